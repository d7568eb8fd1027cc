package parser_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobclip/internal/domain"
	"jobclip/internal/parser"
	"jobclip/internal/port"
	"jobclip/mocks"
)

func TestNewClient_Unregistered(t *testing.T) {
	c := parser.NewClient(domain.ProviderUnknown, nil)

	rec, err := c.Complete(context.Background(), "prompt", domain.LLMOptions{})

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
}

func TestRegisterProvider_UnknownIgnored(t *testing.T) {
	m := new(mocks.MockLLMClient)
	parser.RegisterProvider(domain.ProviderUnknown, func(*http.Client) port.LLMClient { return m })

	_, err := parser.NewClient(domain.ProviderUnknown, nil).Complete(context.Background(), "p", domain.LLMOptions{})

	assert.ErrorIs(t, err, domain.ErrUnsupportedProvider)
	m.AssertNotCalled(t, "Complete")
}

func TestRegisterProvider_UsesFactory(t *testing.T) {
	m := new(mocks.MockLLMClient)
	var got *http.Client
	parser.RegisterProvider(domain.Provider("test-only"), func(hc *http.Client) port.LLMClient {
		got = hc
		return m
	})

	c := parser.NewClient(domain.Provider("test-only"), nil)

	assert.Same(t, m, c)
	assert.Same(t, http.DefaultClient, got)
}
