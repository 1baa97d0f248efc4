package detector

import "os"

// Stderr detects the output mode of the process's standard error.
func Stderr() OutputMode {
	return DetectEnvironment(os.Stderr.Fd())
}
