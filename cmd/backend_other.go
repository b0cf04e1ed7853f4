//go:build !unix

package cmd

import "errors"

func remoteBackend() (backend, error) {
	return nil, errors.New("the jbp daemon is only available on unix systems")
}
