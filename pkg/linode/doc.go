// Package linode provides the object model, filter language, and pagination
// engine for working with the Linode API v4.
//
// # Overview
//
// The linode package defines the schema registry of resource descriptors
// (instances, disks, configs, volumes, domains, domain records, regions,
// types, events), the lazy Entity handle with dirty tracking, the filter
// expression tree that serializes to the X-Filter wire format, and the
// lazily-fetched paginated Collection. A concrete implementation of the
// transport and per-resource clients is provided by the linclient package,
// which wires configuration, retrying HTTP, authentication, and caching.
// Most consumers should import linclient to construct a client and then work
// with the entities and collections exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/linode-client/pkg/linclient"
//	  "github.com/fivetwenty-io/linode-client/pkg/linode"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := linclient.New(&linode.Config{Token: "my-pat"})
//	  if err != nil { log.Fatal(err) }
//
//	  inst, err := cli.Instances().Get(ctx, "12345")
//	  if err != nil { log.Fatal(err) }
//	  _ = inst
//	}
//
// # Entities
//
// An Entity is a handle to one remote resource. Creating one costs nothing;
// the first attribute access fetches the resource body, and later accesses
// are served from the local cache until Invalidate or Refresh. Set records
// local changes and Save sends exactly the modified fields. Delete puts the
// handle in a terminal gone state.
//
// # Filters
//
// Filters build as expression trees from descriptor fields and serialize to
// the JSON the API expects in the X-Filter header:
//
//	desc, _ := linode.DefaultRegistry().Lookup(linode.TypeInstance)
//	region, _ := desc.Filter("region")
//	label, _ := desc.Filter("label")
//	f := linode.And(region.Eq("us-east"), label.Contains("db"))
//
// # Collections and pagination
//
// A Collection is a lazy view over a list endpoint. Pages are fetched on
// demand and cached; indexing with At fetches only the page holding the
// index. Iterate with Iterator, ForEach, or collect everything with All.
//
// # Errors
//
// API failures are represented by Error, which carries the HTTP status and
// the per-field reasons from the response body. Helpers such as IsNotFound,
// IsRateLimited, and IsValidationFailed make it easy to branch on common
// cases. Client-side misuse surfaces as static sentinel errors
// (ErrUnknownField, ErrImmutableField, ErrTypeMismatch, ErrGone, and so on)
// that callers test with errors.Is.
//
// # Caching
//
// A pluggable Cache abstraction (memory, NATS KV, or none) lets the
// transport store responses for slow-moving catalog endpoints such as
// regions and instance types. The linclient package composes a sensible
// default; applications with advanced needs can use the primitives directly.
package linode
