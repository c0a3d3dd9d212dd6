// Package geocode proxies place-name suggestion queries to Amazon Location
// Service, behind a bounded memoizing cache.
package geocode

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/locationservice"
)

// Location is a suggestion split into its display parts.
type Location struct {
	Main        string `json:"main"`
	Secondary   string `json:"secondary"`
	FullAddress string `json:"full_address"`
}

// Client answers free-text place queries with up to topN address suggestions.
type Client interface {
	Suggestions(ctx context.Context, text string, topN int) ([]string, error)
}

// AWSLocationClient implements Client on Amazon Location Service.
type AWSLocationClient struct {
	svc       *locationservice.LocationService
	indexName string
}

// NewAWSLocationClient creates a client against the given place index.
func NewAWSLocationClient(region, indexName string) (*AWSLocationClient, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	return &AWSLocationClient{
		svc:       locationservice.New(sess),
		indexName: indexName,
	}, nil
}

func (c *AWSLocationClient) Suggestions(ctx context.Context, text string, topN int) ([]string, error) {
	out, err := c.svc.SearchPlaceIndexForSuggestionsWithContext(ctx, &locationservice.SearchPlaceIndexForSuggestionsInput{
		IndexName:  aws.String(c.indexName),
		MaxResults: aws.Int64(int64(topN)),
		Text:       aws.String(text),
	})
	if err != nil {
		return nil, err
	}
	addresses := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		addresses = append(addresses, aws.StringValue(r.Text))
	}
	return addresses, nil
}

// ParseAddress splits a full address into its main part and the remainder.
func ParseAddress(address string) Location {
	parts := strings.SplitN(address, ",", 2)
	loc := Location{Main: parts[0], FullAddress: address}
	if len(parts) == 2 {
		loc.Secondary = strings.TrimSpace(parts[1])
	}
	return loc
}
