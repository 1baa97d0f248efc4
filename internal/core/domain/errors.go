package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigMergeFailed is returned when configuration layers cannot be merged.
	ErrConfigMergeFailed = zerr.New("failed to merge configuration")

	// ErrInvalidMode is returned when the mode is neither development nor production.
	ErrInvalidMode = zerr.New("invalid mode, expected 'development' or 'production'")

	// ErrInvalidTarget is returned when the target is neither node nor browser.
	ErrInvalidTarget = zerr.New("invalid target, expected 'node' or 'browser'")

	// ErrInvalidFormat is returned when an unknown output format is requested.
	ErrInvalidFormat = zerr.New("invalid format, expected one of esm, cjs, amd, iife, umd, sys, dts")

	// ErrInvalidPrimary is returned when the primary format is not one of the requested formats.
	ErrInvalidPrimary = zerr.New("primary format is not a requested format")

	// ErrInvalidLogLevel is returned when an unknown log level is configured.
	ErrInvalidLogLevel = zerr.New("invalid log level, expected debug, info, warn, error or silent")

	// ErrInvalidPattern is returned when an external or watch pattern cannot be compiled.
	ErrInvalidPattern = zerr.New("invalid pattern")

	// ErrInvalidInput is returned when an input entry is malformed.
	ErrInvalidInput = zerr.New("invalid input entry")

	// ErrNoInput is returned when no input entries remain after resolution.
	ErrNoInput = zerr.New("no input entries")

	// ErrPackageNotFound is returned when package.json cannot be found in the project root.
	ErrPackageNotFound = zerr.New("package.json not found")

	// ErrPackageParseFailed is returned when package.json cannot be parsed.
	ErrPackageParseFailed = zerr.New("failed to parse package.json")

	// ErrTypeConfigParseFailed is returned when tsconfig.json cannot be parsed.
	ErrTypeConfigParseFailed = zerr.New("failed to parse tsconfig.json")

	// ErrMissingVersion is returned when the version runtime define is enabled but the package has no version.
	ErrMissingVersion = zerr.New("package.json has no version")

	// ErrDotEnvReadFailed is returned when a dotenv file cannot be read or parsed.
	ErrDotEnvReadFailed = zerr.New("failed to read dotenv file")

	// ErrDefineEncodeFailed is returned when a define value cannot be encoded as a literal.
	ErrDefineEncodeFailed = zerr.New("failed to encode define value")

	// ErrTypeStubWriteFailed is returned when the environment type stub cannot be written.
	ErrTypeStubWriteFailed = zerr.New("failed to write environment type stub")

	// ErrBuildFailed is returned when the bundling engine reports errors.
	ErrBuildFailed = zerr.New("build failed")

	// ErrTransformFailed is returned when a pipeline transform fails.
	ErrTransformFailed = zerr.New("transform failed")

	// ErrTranspileFailed is returned when the transpiler rejects a module or chunk.
	ErrTranspileFailed = zerr.New("transpile failed")

	// ErrWriteOutputFailed is returned when an output file cannot be written.
	ErrWriteOutputFailed = zerr.New("failed to write output file")

	// ErrDeclarationFailed is returned when the declaration compiler fails.
	ErrDeclarationFailed = zerr.New("declaration emit failed")

	// ErrCompilerNotFound is returned when no TypeScript compiler can be located.
	ErrCompilerNotFound = zerr.New("typescript compiler not found")

	// ErrTaskStopped is returned when a task is stopped before its first build settles.
	ErrTaskStopped = zerr.New("task stopped")

	// ErrCleanFailed is returned when an output directory or file cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean")

	// ErrCopyFailed is returned when a copy spec cannot be applied.
	ErrCopyFailed = zerr.New("failed to copy")

	// ErrHookFailed is returned when a hook command exits with an error.
	ErrHookFailed = zerr.New("hook failed")

	// ErrWatcherFailed is returned when the configuration watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch configuration files")
)

// ErrorKind classifies a failure for reporting.
type ErrorKind string

const (
	// KindConfig covers malformed or missing configuration and metadata.
	KindConfig ErrorKind = "config"
	// KindEnv covers unreadable environment files.
	KindEnv ErrorKind = "env"
	// KindTask covers a failed build of one format.
	KindTask ErrorKind = "task"
	// KindFS covers clean and copy failures.
	KindFS ErrorKind = "fs"
	// KindHook covers failing hook commands.
	KindHook ErrorKind = "hook"
)

// Failure attaches an ErrorKind to an error.
type Failure struct {
	Kind ErrorKind
	Err  error
}

// Fail wraps err with the given kind. A nil err yields nil and an err that
// already carries a kind is returned unchanged.
func Fail(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return err
	}
	return &Failure{Kind: kind, Err: err}
}

func (f *Failure) Error() string {
	return "[" + string(f.Kind) + "] " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}
