package environment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guideshare/guideshare/pkg/environment"
)

func TestParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, environment.Production, environment.Parse("production"))
	assert.Equal(t, environment.Production, environment.Parse("prod"))
	assert.Equal(t, environment.Staging, environment.Parse("stage"))
	assert.Equal(t, environment.Development, environment.Parse("development"))
	assert.Equal(t, environment.Development, environment.Parse(""))
	assert.Equal(t, environment.Development, environment.Parse("whatever"))
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := environment.WithContext(context.Background(), environment.Production)
	assert.Equal(t, environment.Production, environment.FromContext(ctx))
	assert.True(t, environment.FromContext(ctx).IsProduction())

	assert.Equal(t, environment.Development, environment.FromContext(context.Background()))
}
