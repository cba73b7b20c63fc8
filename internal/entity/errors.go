package entity

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching across wrapping layers.
var (
	ErrNoDefinitionFound          = errors.New("no definition found")
	ErrDefinitionProcessing       = errors.New("definition processing failed")
	ErrNoContainedDefinitionFound = errors.New("no contained definition found")
	ErrDataMerge                  = errors.New("data merge failed")
)

// NoDefinitionFoundError reports an entity that was referenced but never
// defined: it is still a placeholder after every file has been processed.
type NoDefinitionFoundError struct {
	Kind Kind
	ID   string
	File string
}

func (e *NoDefinitionFoundError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s %q is referenced but never defined", e.Kind, e.ID)
	}
	return fmt.Sprintf("%s %q is referenced but never defined (referenced from %s)", e.Kind, e.ID, e.File)
}

func (e *NoDefinitionFoundError) Unwrap() error { return ErrNoDefinitionFound }

// DefinitionProcessingError reports a record whose contents are invalid.
type DefinitionProcessingError struct {
	Kind    Kind
	ID      string
	File    string
	Message string
}

func (e *DefinitionProcessingError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", e.File, e.Kind, e.ID, e.Message)
}

func (e *DefinitionProcessingError) Unwrap() error { return ErrDefinitionProcessing }

// NoContainedDefinitionFoundError reports a Project record referencing a
// Library entity that does not exist.
type NoContainedDefinitionFoundError struct {
	ContainedKind Kind
	ContainedID   string
	ContainerKind Kind
	ContainerID   string
	File          string
}

func (e *NoContainedDefinitionFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q references %s %q which is not in the library",
		e.File, e.ContainerKind, e.ContainerID, e.ContainedKind, e.ContainedID)
}

func (e *NoContainedDefinitionFoundError) Unwrap() error { return ErrNoContainedDefinitionFound }

// DataMergeError reports a merge between two entities with different IDs.
// Reaching it means a caller paired the wrong entities.
type DataMergeError struct {
	Kind      Kind
	SelfID    string
	OtherID   string
	SelfFile  string
	OtherFile string
}

func (e *DataMergeError) Error() string {
	return fmt.Sprintf("cannot merge %s %q (%s) with %q (%s): ids differ",
		e.Kind, e.SelfID, e.SelfFile, e.OtherID, e.OtherFile)
}

func (e *DataMergeError) Unwrap() error { return ErrDataMerge }
