package main

import (
	"testing"

	"github.com/fekuna/goldsmith-catalog-service/config"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestNewUploaderReturnsConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
	}{
		{"sftp without known hosts", config.StorageConfig{Driver: "sftp", SFTPAddr: "files.example.com:22"}},
		{"sftp with missing known hosts file", config.StorageConfig{Driver: "sftp", SFTPKnownHosts: "/nonexistent/known_hosts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader, err := newUploader(&tt.cfg, logger.NewNop())
			assert.Error(t, err)
			assert.Nil(t, uploader)
		})
	}
}
