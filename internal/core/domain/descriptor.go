package domain

// Descriptor is the static per-type metadata a resource manager needs to
// enumerate and identify resources of one kind. Instances are created at
// process start and never mutated.
type Descriptor struct {
	// Service is the provider service namespace, e.g. "es".
	Service string
	// Kind tags resources produced by the manager.
	Kind ResourceKind
	// EnumOp names the provider enumeration call, for logging and audit.
	EnumOp string
	// EnumPath is the result-extraction path of the enumeration output.
	EnumPath string
	// IDField is the attribute uniquely identifying a resource within
	// account+region+kind. Immutable once assigned by the provider.
	IDField string
	// NameField is the display-name attribute.
	NameField string
	// Dimension is the CloudWatch dimension name for metric lookups.
	Dimension string
	// ARNResourceType and ARNSeparator shape the generated ARN suffix,
	// e.g. "domain" and "/" produce arn:aws:es:region:account:domain/id.
	ARNResourceType string
	ARNSeparator    string
}
