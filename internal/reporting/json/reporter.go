package json

import (
	"context"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	apperrors "github.com/olusolaa/resource-warden/internal/errors"
)

const ReporterTypeJSON = "json"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type Reporter struct {
	writer io.Writer
	logger ports.Logger
}

func NewReporter(logger ports.Logger) (*Reporter, error) {
	return &Reporter{writer: os.Stdout, logger: logger}, nil
}

type failureDoc struct {
	ResourceID string `json:"resource_id"`
	Error      string `json:"error"`
}

type actionDoc struct {
	Action    string       `json:"action"`
	Processed int          `json:"processed"`
	Failures  []failureDoc `json:"failures"`
}

type runDoc struct {
	Policy     string      `json:"policy"`
	Kind       string      `json:"kind"`
	Enumerated int         `json:"enumerated"`
	Matched    int         `json:"matched"`
	MatchedIDs []string    `json:"matched_ids,omitempty"`
	Actions    []actionDoc `json:"actions"`
}

func (r *Reporter) Report(_ context.Context, result *domain.RunResult) error {
	if result == nil {
		return nil
	}

	doc := runDoc{
		Policy:     result.Policy,
		Kind:       string(result.Kind),
		Enumerated: result.Enumerated,
		Matched:    result.Matched,
		MatchedIDs: result.MatchedIDs,
		Actions:    make([]actionDoc, 0, len(result.Actions)),
	}
	for _, a := range result.Actions {
		ad := actionDoc{
			Action:    a.Action,
			Processed: a.Processed,
			Failures:  make([]failureDoc, 0, len(a.Failures)),
		}
		for _, f := range a.Failures {
			ad.Failures = append(ad.Failures, failureDoc{
				ResourceID: f.ResourceID,
				Error:      f.Err.Error(),
			})
		}
		doc.Actions = append(doc.Actions, ad)
	}

	enc := jsonAPI.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to encode run report")
	}
	return nil
}
