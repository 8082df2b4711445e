package in

import "context"

type Usecase interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
	MarkOnboardingSeen(ctx context.Context) error
	OnboardingSeen(ctx context.Context) bool
}
