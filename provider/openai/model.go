package openai

import (
	"context"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/arggpt/provider"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is used when a request names no model.
const DefaultModel = "gpt-3.5-turbo-1106"

var modelRegistry = haxmap.New[string, *ModelProvider]()

func GPT35Turbo(opts ...option.RequestOption) *ModelProvider {
	return Model(DefaultModel, opts...)
}

func GPT4oMini(opts ...option.RequestOption) *ModelProvider {
	return Model(openai.ChatModelGPT4oMini, opts...)
}

func GPT4o(opts ...option.RequestOption) *ModelProvider {
	return Model(openai.ChatModelGPT4o, opts...)
}

// Model returns the cached provider for name. The options of the first call
// for a name win.
func Model(name string, opts ...option.RequestOption) *ModelProvider {
	m, _ := modelRegistry.GetOrCompute(name, func() *ModelProvider {
		return &ModelProvider{
			name: name,
			opts: opts,
		}
	})
	return m
}

var _ provider.Provider = (*ModelProvider)(nil)

// ModelProvider is a provider bound to one model. Requests without a model use it.
type ModelProvider struct {
	name string
	opts []option.RequestOption

	prov     *Provider
	provOnce sync.Once
}

func (m *ModelProvider) Name() string {
	return m.name
}

func (m *ModelProvider) Provider() *Provider {
	m.provOnce.Do(func() {
		m.prov = New(m.opts...)
	})
	return m.prov
}

func (m *ModelProvider) ChatCompletion(ctx context.Context, req provider.Request) (*provider.Response, error) {
	if req.Model == "" {
		req.Model = m.name
	}
	return m.Provider().ChatCompletion(ctx, req)
}
