package backend

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/kinesis"

	"github.com/firelog/firelog/pkg/firelog/config"
)

// Kinesis is the default stream backend. Each Deliver call issues one
// PutRecord against AWS Kinesis.
type Kinesis struct {
	client *kinesis.Client
}

// NewKinesis builds a Kinesis backend from a resolved descriptor.
//
// When the descriptor carries an endpoint override it is passed to the SDK
// verbatim; otherwise the SDK resolves the regional endpoint. Static
// credentials are used only when an access key ID is present, so deployments
// relying on instance roles can leave them unset.
func NewKinesis(cfg config.AWS) *Kinesis {
	opts := kinesis.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return &Kinesis{client: kinesis.New(opts)}
}

// Deliver implements Backend.
func (k *Kinesis) Deliver(ctx context.Context, stream string, data []byte, partitionKey string) error {
	_, err := k.client.PutRecord(ctx, &kinesis.PutRecordInput{
		StreamName:   aws.String(stream),
		Data:         data,
		PartitionKey: aws.String(partitionKey),
	})
	if err != nil {
		return fmt.Errorf("put record to %s: %w", stream, err)
	}
	return nil
}
