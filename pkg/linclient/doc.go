// Package linclient provides the primary entry point for constructing a
// Linode API v4 client.
//
// It layers configuration, retrying HTTP transport, bearer authentication,
// and optional response caching on top of the object model defined in the
// linode package. Most applications should import linclient to build a
// client, then use the returned client to access resource-specific clients,
// for example Instances(), Volumes(), Domains().
//
// Quick start
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
//
//	  // With a personal access token:
//	  cli, err := linclient.NewWithToken("my-pat")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or from the environment (LINODE_TOKEN / LINODE_API_TOKEN):
//	  cli, err = linclient.NewFromEnv()
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with full configuration:
//	  cli, err = linclient.New(&linode.Config{
//	    Token: "my-pat",
//	    Cache: &linode.CacheConfig{Type: linode.CacheTypeMemory},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  inst, err := cli.Instances().Get(ctx, "12345")
//	  if err != nil { log.Fatal(err) }
//	  _ = inst
//	}
package linclient
