package linode

// Type-tags for the built-in entity types.
const (
	TypeInstance     = "instance"
	TypeDisk         = "disk"
	TypeConfig       = "config"
	TypeInstanceIPs  = "instance_ips"
	TypeVolume       = "volume"
	TypeDomain       = "domain"
	TypeDomainRecord = "domain_record"
	TypeRegion       = "region"
	TypeInstanceType = "type"
	TypeEvent        = "event"
)

// defaultRegistry carries the descriptor tables for the Linode API v4
// resources this client models. Built once; never mutated at runtime.
var defaultRegistry = buildDefaultRegistry()

// DefaultRegistry returns the registry of built-in Linode entity types.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func buildDefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(NewDescriptor(TypeInstance, "linode/instances",
		Field{Name: "label", Kind: KindScalar, Type: TypeString, Mutable: true, Filterable: true},
		Field{Name: "region", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "type", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "status", Kind: KindScalar, Type: TypeString},
		Field{Name: "image", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "group", Kind: KindScalar, Type: TypeString, Mutable: true, Filterable: true},
		Field{Name: "tags", Kind: KindScalar, Type: TypeStringList, Mutable: true, Filterable: true},
		Field{Name: "hypervisor", Kind: KindScalar, Type: TypeString},
		Field{Name: "ipv4", Kind: KindScalar, Type: TypeStringList},
		Field{Name: "ipv6", Kind: KindScalar, Type: TypeString},
		Field{Name: "created", Kind: KindScalar, Type: TypeString},
		Field{Name: "updated", Kind: KindScalar, Type: TypeString},
		Field{Name: "disks", Kind: KindDerivedCollection, Relation: TypeDisk, Endpoint: "linode/instances/{}/disks"},
		Field{Name: "configs", Kind: KindDerivedCollection, Relation: TypeConfig, Endpoint: "linode/instances/{}/configs"},
		Field{Name: "ips", Kind: KindDerivedEntity, Relation: TypeInstanceIPs, Endpoint: "linode/instances/{}/ips"},
	))

	r.MustRegister(NewDescriptor(TypeDisk, "linode/instances/{}/disks",
		Field{Name: "label", Kind: KindScalar, Type: TypeString, Mutable: true},
		Field{Name: "status", Kind: KindScalar, Type: TypeString},
		Field{Name: "size", Kind: KindScalar, Type: TypeInt},
		Field{Name: "filesystem", Kind: KindScalar, Type: TypeString},
	))

	r.MustRegister(NewDescriptor(TypeConfig, "linode/instances/{}/configs",
		Field{Name: "label", Kind: KindScalar, Type: TypeString, Mutable: true},
		Field{Name: "kernel", Kind: KindScalar, Type: TypeString, Mutable: true},
		Field{Name: "comments", Kind: KindScalar, Type: TypeString, Mutable: true},
		Field{Name: "root_device", Kind: KindScalar, Type: TypeString, Mutable: true},
	))

	r.MustRegister(NewDescriptor(TypeInstanceIPs, "linode/instances/{}/ips",
		Field{Name: "ipv4", Kind: KindScalar, Type: TypeAny},
		Field{Name: "ipv6", Kind: KindScalar, Type: TypeAny},
	))

	r.MustRegister(NewDescriptor(TypeVolume, "volumes",
		Field{Name: "label", Kind: KindScalar, Type: TypeString, Mutable: true, Filterable: true},
		Field{Name: "status", Kind: KindScalar, Type: TypeString},
		Field{Name: "size", Kind: KindScalar, Type: TypeInt, Mutable: true},
		Field{Name: "region", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "linode_id", Kind: KindScalar, Type: TypeInt},
		Field{Name: "filesystem_path", Kind: KindScalar, Type: TypeString},
		Field{Name: "tags", Kind: KindScalar, Type: TypeStringList, Mutable: true, Filterable: true},
	))

	r.MustRegister(NewDescriptor(TypeDomain, "domains",
		Field{Name: "domain", Kind: KindScalar, Type: TypeString, Mutable: true, Filterable: true},
		Field{Name: "type", Kind: KindScalar, Type: TypeString},
		Field{Name: "status", Kind: KindScalar, Type: TypeString, Mutable: true},
		Field{Name: "soa_email", Kind: KindScalar, Type: TypeString, Mutable: true},
		Field{Name: "description", Kind: KindScalar, Type: TypeString, Mutable: true},
		Field{Name: "ttl_sec", Kind: KindScalar, Type: TypeInt, Mutable: true},
		Field{Name: "tags", Kind: KindScalar, Type: TypeStringList, Mutable: true, Filterable: true},
		Field{Name: "records", Kind: KindDerivedCollection, Relation: TypeDomainRecord, Endpoint: "domains/{}/records"},
	))

	r.MustRegister(NewDescriptor(TypeDomainRecord, "domains/{}/records",
		Field{Name: "type", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "name", Kind: KindScalar, Type: TypeString, Mutable: true, Filterable: true},
		Field{Name: "target", Kind: KindScalar, Type: TypeString, Mutable: true, Filterable: true},
		Field{Name: "priority", Kind: KindScalar, Type: TypeInt, Mutable: true},
		Field{Name: "weight", Kind: KindScalar, Type: TypeInt, Mutable: true},
		Field{Name: "port", Kind: KindScalar, Type: TypeInt, Mutable: true},
		Field{Name: "ttl_sec", Kind: KindScalar, Type: TypeInt, Mutable: true},
	))

	r.MustRegister(NewDescriptor(TypeRegion, "regions",
		Field{Name: "label", Kind: KindScalar, Type: TypeString},
		Field{Name: "country", Kind: KindScalar, Type: TypeString},
		Field{Name: "capabilities", Kind: KindScalar, Type: TypeStringList},
		Field{Name: "status", Kind: KindScalar, Type: TypeString},
	))

	r.MustRegister(NewDescriptor(TypeInstanceType, "linode/types",
		Field{Name: "label", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "class", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "disk", Kind: KindScalar, Type: TypeInt},
		Field{Name: "memory", Kind: KindScalar, Type: TypeInt},
		Field{Name: "vcpus", Kind: KindScalar, Type: TypeInt, Filterable: true},
		Field{Name: "transfer", Kind: KindScalar, Type: TypeInt},
	))

	r.MustRegister(NewDescriptor(TypeEvent, "account/events",
		Field{Name: "action", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "status", Kind: KindScalar, Type: TypeString},
		Field{Name: "entity", Kind: KindScalar, Type: TypeAny},
		Field{Name: "username", Kind: KindScalar, Type: TypeString},
		Field{Name: "created", Kind: KindScalar, Type: TypeString, Filterable: true},
		Field{Name: "percent_complete", Kind: KindScalar, Type: TypeInt},
		Field{Name: "read", Kind: KindScalar, Type: TypeBool},
		Field{Name: "seen", Kind: KindScalar, Type: TypeBool},
	))

	return r
}
