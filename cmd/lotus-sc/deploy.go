package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/lotus-sim/lotus-script-go/errors"
)

// deployOptions is a resolved deploy invocation.
type deployOptions struct {
	UserID  int32
	SubID   int32
	Package string
	Name    string
	Tags    string
	Release bool
}

func deployCommand(ctx context.Context, log *zap.Logger, args []string) error {
	cfg, err := loadProjectConfig(configFile)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("deploy", flag.ContinueOnError)
	userID := fs.Int("user-id", int(cfg.UserID), "User id of the content")
	subID := fs.Int("sub-id", int(cfg.SubID), "Sub id of the content")
	pkg := fs.String("package", cfg.Package, "Go package of the script")
	name := fs.String("name", cfg.Name, "File name of the deployed wasm, without extension")
	release := fs.Bool("release", false, "Strip debug information")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !cfg.HasID && !(set["user-id"] && set["sub-id"]) {
		return errors.InvalidInput(errors.PhaseDeploy, "-user-id and -sub-id are required without "+configFile)
	}

	opts := deployOptions{
		UserID:  int32(*userID),
		SubID:   int32(*subID),
		Package: *pkg,
		Name:    *name,
		Tags:    cfg.Tags,
		Release: *release,
	}
	if opts.Name == "" {
		opts.Name = packageFileName(opts.Package)
	}

	dataDir, err := lotusDataDir()
	if err != nil {
		return err
	}
	return deploy(ctx, log, opts, dataDir)
}

func deploy(ctx context.Context, log *zap.Logger, opts deployOptions, dataDir string) error {
	dir := contentDir(dataDir, opts.UserID, opts.SubID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Info("creating content directory", zap.String("dir", dir))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create content directory %s: %w", dir, err)
		}
	}

	tmp, err := os.MkdirTemp("", "lotus-sc-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	built := filepath.Join(tmp, opts.Name+".wasm")
	log.Info("building script", zap.String("package", opts.Package), zap.Bool("release", opts.Release))
	cmd := exec.CommandContext(ctx, "go", buildArgs(opts, built)...)
	cmd.Env = append(os.Environ(), "GOOS=wasip1", "GOARCH=wasm")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrap(errors.PhaseDeploy, errors.KindInvalidInput, err, "build script "+opts.Package)
	}

	target := filepath.Join(dir, opts.Name+".wasm")
	log.Info("copying wasm file", zap.String("to", target))
	if err := copyFile(built, target); err != nil {
		return errors.Wrap(errors.PhaseDeploy, errors.KindInvalidData, err,
			fmt.Sprintf("copy wasm file from %s to %s", built, target))
	}
	return nil
}

func buildArgs(opts deployOptions, out string) []string {
	args := []string{"build", "-buildmode=c-shared", "-o", out}
	if opts.Tags != "" {
		args = append(args, "-tags", opts.Tags)
	}
	if opts.Release {
		args = append(args, "-trimpath", "-ldflags=-s -w")
	}
	return append(args, opts.Package)
}

func contentDir(dataDir string, userID, subID int32) string {
	return filepath.Join(dataDir, "overrides",
		strconv.FormatInt(int64(userID), 10), strconv.FormatInt(int64(subID), 10))
}

// packageFileName derives a file name from a package path such as ./cmd/door.
func packageFileName(pkg string) string {
	base := filepath.Base(filepath.Clean(pkg))
	if base == "." || base == string(filepath.Separator) {
		if wd, err := os.Getwd(); err == nil {
			base = filepath.Base(wd)
		}
	}
	return strings.ReplaceAll(base, "-", "_")
}

// lotusDataDir returns the simulator's data directory. LOTUS_DATA_DIR overrides it.
func lotusDataDir() (string, error) {
	if dir := os.Getenv("LOTUS_DATA_DIR"); dir != "" {
		return dir, nil
	}
	base, err := userDataDir()
	if err != nil {
		return "", fmt.Errorf("locate data directory: %w", err)
	}
	return filepath.Join(base, "LOTUS-Simulator"), nil
}

func userDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows", "darwin", "ios", "plan9":
		return os.UserConfigDir()
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
