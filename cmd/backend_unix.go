//go:build unix

package cmd

import "github.com/gurisko/jbp/internal/apiclient"

func remoteBackend() (backend, error) {
	return apiclient.New(), nil
}
