package es

import "github.com/olusolaa/resource-warden/internal/core/domain"

// DomainDescriptor is the static metadata for the Elasticsearch domain
// resource type.
var DomainDescriptor = &domain.Descriptor{
	Service:         "es",
	Kind:            domain.KindElasticsearchDomain,
	EnumOp:          "ListDomainNames",
	EnumPath:        "DomainNames[].DomainName",
	IDField:         "DomainName",
	NameField:       "DomainName",
	Dimension:       "DomainName",
	ARNResourceType: "domain",
	ARNSeparator:    "/",
}
