package arch

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Options selects the strategies used by Load. Zero values select defaults.
type Options struct {
	Matcher    Matcher
	Renamer    *Renamer
	Classifier *Classifier
}

// Architecture is the reconciled, classified and resolved view of one pair
// of documents.
type Architecture struct {
	Software *Document
	// Hardware is nil when no hardware document was given or it could not be read.
	Hardware *Document

	Components  []ComponentRecord
	Connections []ConnectionRecord
	Fallback    []ConnectionRecord
	Bindings    []Binding
	// Dropped holds one error per connection that could not be resolved.
	Dropped []error
}

// Load runs the document stages of the pipeline. A missing software
// document is fatal; a missing hardware document only degrades the result.
// A malformed document of either kind is fatal.
func Load(softwarePath, hardwarePath string, opts Options) (*Architecture, error) {
	if opts.Matcher == nil {
		opts.Matcher = ContainmentMatcher{}
	}
	if opts.Renamer == nil {
		opts.Renamer = NewRenamer(nil, "")
	}
	if opts.Classifier == nil {
		opts.Classifier = NewClassifier()
	}

	sw, err := LoadDocument(softwarePath)
	if err != nil {
		return nil, fmt.Errorf("software document: %w", err)
	}
	a := &Architecture{Software: sw}

	var hwSpecs []HardwareSpec
	if hardwarePath != "" {
		hw, err := LoadDocument(hardwarePath)
		var notFound *DocumentNotFoundError
		switch {
		case errors.As(err, &notFound):
			logrus.Warnf("Hardware document unavailable, continuing with software only: %v", err)
		case err != nil:
			return nil, fmt.Errorf("hardware document: %w", err)
		default:
			a.Hardware = hw
			hwSpecs = ExtractHardware(hw)
		}
	}

	components := ExtractSoftware(sw)
	logrus.Infof("Extracted %d components and %d hardware nodes", len(components), len(hwSpecs))
	components, a.Bindings = Reconcile(components, hwSpecs, opts.Matcher)
	if len(components) == 0 {
		return nil, &NoComponentsError{SoftwarePath: softwarePath, HardwarePath: hardwarePath}
	}
	components = opts.Renamer.RenameAll(components)
	a.Components = opts.Classifier.ClassifyAll(components)

	a.Connections, a.Dropped = ResolveConnections(sw, a.Components)
	if a.Hardware != nil {
		a.Fallback = FallbackConnections(a.Bindings, a.Components)
	}
	logrus.Infof("Resolved %d connections (%d dropped, %d hardware fallback)", len(a.Connections), len(a.Dropped), len(a.Fallback))
	return a, nil
}

// Component returns the record named name, or nil.
func (a *Architecture) Component(name string) *ComponentRecord {
	for i := range a.Components {
		if a.Components[i].Name == name {
			return &a.Components[i]
		}
	}
	return nil
}
