package skyflow

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
// The version is incremented according to the following rules:
//   - MAJOR: Breaking changes to the public API
//   - MINOR: New features, backwards compatible
//   - PATCH: Bug fixes, backwards compatible
const Version = "0.1.0"

// APIVersion is the vault API version this SDK was built for. Its major
// component selects the request path prefix ("/v1").
const APIVersion = "1.0.0"

// APIVersionRange is the semver constraint of vault API versions the SDK
// is known to work with.
const APIVersionRange = ">=1.0.0, <2.0.0"

var (
	apiVersion    = semver.MustParse(APIVersion)
	apiConstraint = mustConstraint(APIVersionRange)
)

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(fmt.Sprintf("skyflow: invalid API version range %q: %v", c, err))
	}
	return constraint
}

// apiPathPrefix returns the versioned path prefix of every vault endpoint.
func apiPathPrefix() string {
	return fmt.Sprintf("/v%d", apiVersion.Major())
}

// CompatibilityStatus is the outcome of a version compatibility check.
type CompatibilityStatus int

const (
	// Unknown means the server version could not be parsed.
	Unknown CompatibilityStatus = iota
	// Compatible means the server version is within APIVersionRange.
	Compatible
	// Incompatible means the server version is outside APIVersionRange.
	Incompatible
)

func (s CompatibilityStatus) String() string {
	switch s {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityResult describes how a vault API version relates to the SDK.
type CompatibilityResult struct {
	Status           CompatibilityStatus
	ServerVersion    string
	SDKVersion       string
	TargetAPIVersion string
	SupportedRange   string
	Message          string
}

// IsCompatible reports whether Status is Compatible.
func (r *CompatibilityResult) IsCompatible() bool {
	return r.Status == Compatible
}

// CheckCompatibility checks a vault API version against APIVersionRange.
// Loose versions such as "v1" or "1.2" are accepted.
func CheckCompatibility(serverVersion string) *CompatibilityResult {
	result := &CompatibilityResult{
		ServerVersion:    serverVersion,
		SDKVersion:       Version,
		TargetAPIVersion: APIVersion,
		SupportedRange:   APIVersionRange,
	}

	v, err := semver.NewVersion(serverVersion)
	if err != nil {
		result.Status = Unknown
		result.Message = fmt.Sprintf("unable to parse API version %q: %v", serverVersion, err)
		return result
	}

	if apiConstraint.Check(v) {
		result.Status = Compatible
		result.Message = fmt.Sprintf("API version %s is compatible with SDK %s", v, Version)
		return result
	}

	result.Status = Incompatible
	result.Message = fmt.Sprintf("API version %s is not compatible with SDK %s (supported: %s)", v, Version, APIVersionRange)
	return result
}

// IsCompatible is a shortcut for CheckCompatibility(v).IsCompatible().
func IsCompatible(serverVersion string) bool {
	return CheckCompatibility(serverVersion).IsCompatible()
}
