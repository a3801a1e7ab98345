package strategy

import "go.trai.ch/zerr"

// Definition errors abort loading a package definition; they are author
// mistakes. Planning errors are surfaced per resolved configuration and
// mean that one request cannot proceed. All carry structured metadata
// via zerr.With.
var (
	// ErrDuplicateStrategy is returned when a package declares the same
	// build system twice.
	ErrDuplicateStrategy = zerr.New("build system declared twice")

	// ErrNoStrategy is returned when a package declares no build system
	// at all.
	ErrNoStrategy = zerr.New("no build system declared")

	// ErrUnknownKind is returned when a declaration names a build-system
	// kind that is not registered.
	ErrUnknownKind = zerr.New("unknown build-system kind")

	// ErrConflictingOverride is returned when two overrides target the
	// same phase of the same build system.
	ErrConflictingOverride = zerr.New("conflicting phase overrides")

	// ErrAmbiguousOverrideTarget is returned when an override names no
	// build system and the package declares more than one.
	ErrAmbiguousOverrideTarget = zerr.New("override target is ambiguous")

	// ErrOverrideUnknownPhase is returned when an override names a phase
	// the targeted build system does not have.
	ErrOverrideUnknownPhase = zerr.New("override targets unknown phase")

	// ErrNoApplicableStrategy is returned when no declared build system's
	// condition holds for a resolved configuration.
	ErrNoApplicableStrategy = zerr.New("no applicable build system")

	// ErrUnknownStrategy is returned when an explicit build-system choice
	// names a system the package does not declare.
	ErrUnknownStrategy = zerr.New("build system not declared by package")

	// ErrUnsatisfiedStrategy is returned when an explicit build-system
	// choice names a declared system whose condition does not hold for
	// the resolved configuration.
	ErrUnsatisfiedStrategy = zerr.New("build system not applicable to configuration")
)
