package outbound

import "context"

type ImageServicePort interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
