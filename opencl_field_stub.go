//go:build !opencl

package main

import "errors"

type openCLFieldSampler struct {
	fieldSampler
}

func newOpenCLFieldSampler(cols, rows int) (*openCLFieldSampler, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (s *openCLFieldSampler) DeviceName() string { return "" }
