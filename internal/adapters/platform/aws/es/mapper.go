package es

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice/types"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/errors"
)

// mapDomainStatus converts one describe record into a resource document.
// ARN and Tags are left for the augmentation step; the raw describe ARN is
// still kept in the attribute map for reference.
func mapDomainStatus(status types.ElasticsearchDomainStatus) (*domain.Resource, error) {
	if status.DomainName == nil {
		return nil, errors.New(errors.CodeInternal, "received ES domain status with nil DomainName")
	}

	attrs := make(map[string]any)
	attrs["DomainName"] = aws.ToString(status.DomainName)
	attrs["DomainId"] = aws.ToString(status.DomainId)

	if status.ElasticsearchVersion != nil {
		attrs["ElasticsearchVersion"] = aws.ToString(status.ElasticsearchVersion)
	}
	if status.Endpoint != nil {
		attrs["Endpoint"] = aws.ToString(status.Endpoint)
	}
	attrs["Created"] = aws.ToBool(status.Created)
	attrs["Deleted"] = aws.ToBool(status.Deleted)
	attrs["Processing"] = aws.ToBool(status.Processing)

	if cc := status.ElasticsearchClusterConfig; cc != nil {
		cluster := map[string]any{
			"InstanceType":  string(cc.InstanceType),
			"InstanceCount": int(aws.ToInt32(cc.InstanceCount)),
		}
		if cc.DedicatedMasterEnabled != nil {
			cluster["DedicatedMasterEnabled"] = aws.ToBool(cc.DedicatedMasterEnabled)
		}
		if cc.ZoneAwarenessEnabled != nil {
			cluster["ZoneAwarenessEnabled"] = aws.ToBool(cc.ZoneAwarenessEnabled)
		}
		attrs["ElasticsearchClusterConfig"] = cluster
	}

	if eb := status.EBSOptions; eb != nil {
		ebs := map[string]any{
			"EBSEnabled": aws.ToBool(eb.EBSEnabled),
		}
		if eb.VolumeSize != nil {
			ebs["VolumeSize"] = int(aws.ToInt32(eb.VolumeSize))
		}
		if eb.VolumeType != "" {
			ebs["VolumeType"] = string(eb.VolumeType)
		}
		attrs["EBSOptions"] = ebs
	}

	if vpc := status.VPCOptions; vpc != nil {
		attrs["VPCOptions"] = map[string]any{
			"VPCId":            aws.ToString(vpc.VPCId),
			"SubnetIds":        append([]string(nil), vpc.SubnetIds...),
			"SecurityGroupIds": append([]string(nil), vpc.SecurityGroupIds...),
		}
	}

	if status.ARN != nil {
		attrs["ARN"] = aws.ToString(status.ARN)
	}

	return &domain.Resource{
		Kind:  domain.KindElasticsearchDomain,
		Attrs: attrs,
	}, nil
}

// mapTags converts a provider tag list, preserving order. A nil input
// yields an empty, non-nil slice so augmented records always carry Tags.
func mapTags(tagList []types.Tag) []domain.Tag {
	tags := make([]domain.Tag, 0, len(tagList))
	for _, t := range tagList {
		tags = append(tags, domain.Tag{
			Key:   aws.ToString(t.Key),
			Value: aws.ToString(t.Value),
		})
	}
	return tags
}
