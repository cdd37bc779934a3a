package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterStore is the part of the SSM client used to read parameters.
type ParameterStore interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// NewParameterStore builds an SSM client from the default AWS credential chain.
func NewParameterStore(ctx context.Context, region string) (*ssm.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// LoadSSM overlays every parameter under prefix onto cfg. A parameter named
// "<prefix>/jwt_secret" becomes the key JWT_SECRET. Returns the number of keys set.
func LoadSSM(ctx context.Context, store ParameterStore, prefix string, cfg map[string]string) (int, error) {
	if prefix == "" {
		return 0, nil
	}

	input := &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	}

	count := 0
	for {
		out, err := store.GetParametersByPath(ctx, input)
		if err != nil {
			return count, fmt.Errorf("get parameters under %s: %w", prefix, err)
		}
		for _, p := range out.Parameters {
			if p.Name == nil || p.Value == nil {
				continue
			}
			cfg[keyFromParameter(*p.Name)] = *p.Value
			count++
		}
		if out.NextToken == nil || *out.NextToken == "" {
			return count, nil
		}
		input.NextToken = out.NextToken
	}
}

func keyFromParameter(name string) string {
	key := strings.ToUpper(path.Base(name))
	return strings.ReplaceAll(key, "-", "_")
}
