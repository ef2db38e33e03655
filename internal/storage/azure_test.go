package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAzureStorageRequiresAccount(t *testing.T) {
	_, err := NewAzureStorage(context.Background(), "", "discoveries")
	assert.ErrorIs(t, err, ErrAccountRequired)
}

func TestServiceURL(t *testing.T) {
	assert.Equal(t, "https://campaigndata.blob.core.windows.net/", serviceURL("campaigndata"))
}

func TestNotFound(t *testing.T) {
	other := errors.New("connection reset")
	assert.Equal(t, other, notFound(other))
	assert.NotErrorIs(t, notFound(other), ErrNotFound)
}
