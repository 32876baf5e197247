// Package arn derives resource ARNs deterministically from the
// service/region/account binding of a manager instance.
package arn

import "fmt"

const defaultPartition = "aws"

// Generator renders ARNs for one service bound to an account and region.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	partition    string
	service      string
	region       string
	accountID    string
	resourceType string
	separator    string
}

func NewGenerator(service, region, accountID, resourceType, separator string) *Generator {
	return &Generator{
		partition:    defaultPartition,
		service:      service,
		region:       region,
		accountID:    accountID,
		resourceType: resourceType,
		separator:    separator,
	}
}

// ARN returns the full ARN for one resource id, e.g.
// arn:aws:es:us-east-1:123456789012:domain/my-domain.
func (g *Generator) ARN(id string) string {
	return fmt.Sprintf("arn:%s:%s:%s:%s:%s%s%s",
		g.partition, g.service, g.region, g.accountID,
		g.resourceType, g.separator, id)
}
