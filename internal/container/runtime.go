// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container finds a local container runtime and runs one-shot,
// network-isolated containers that read a document on stdin.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime runs extraction images.
type Runtime interface {
	// Name returns the runtime binary ("docker" or "podman").
	Name() string

	// Available reports whether the binary is on PATH and its daemon answers.
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts image with stdin attached, copies its stdout to stdout and
	// removes the container afterwards.
	Run(image string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts process execution for tests.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// cli drives a docker-compatible binary. Docker and Podman differ only in
// the binary name and the image existence subcommand.
type cli struct {
	bin        string
	imageCheck []string
	exec       executor
}

func (c *cli) Name() string { return c.bin }

func (c *cli) Available() bool {
	if _, err := c.exec.LookPath(c.bin); err != nil {
		return false
	}
	return c.exec.RunSilent(c.bin, "info") == nil
}

func (c *cli) ImageExists(image string) error {
	args := append(append([]string{}, c.imageCheck...), image)
	if err := c.exec.RunSilent(c.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, c.bin, err)
	}
	return nil
}

// runArgs builds the argument list for a one-shot run without network access.
func runArgs(image string) []string {
	return []string{"run", "--rm", "-i", "--network", "none", image}
}

func (c *cli) Run(image string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	if err := c.exec.RunPiped(c.bin, runArgs(image), stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s in %s: %w: %s", image, c.bin, err, msg)
		}
		return fmt.Errorf("running %s in %s: %w", image, c.bin, err)
	}
	return nil
}

func newDocker(e executor) *cli {
	return &cli{bin: binDocker, imageCheck: []string{"image", "inspect"}, exec: e}
}

func newPodman(e executor) *cli {
	return &cli{bin: binPodman, imageCheck: []string{"image", "exists"}, exec: e}
}

// DetectRuntime returns docker if it works, otherwise podman.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(osExecutor{})
}

func detectRuntime(e executor) (Runtime, error) {
	for _, rt := range []*cli{newDocker(e), newPodman(e)} {
		if rt.Available() {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("no container runtime available: neither %s nor %s found or operational", binDocker, binPodman)
}
