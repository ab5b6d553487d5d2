package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

type Firestore struct {
	client     *firestore.Client
	vendor     *vendorRepository
	process    *processRepository
	simulation *simulationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes all collection names. Tests use this to
// isolate parallel runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.vendor.collectionPrefix = prefix
		f.process.collectionPrefix = prefix
		f.simulation.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:     client,
		vendor:     newVendorRepository(client),
		process:    newProcessRepository(client),
		simulation: newSimulationRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Vendor() interfaces.VendorRepository {
	return f.vendor
}

func (f *Firestore) BusinessProcess() interfaces.BusinessProcessRepository {
	return f.process
}

func (f *Firestore) Simulation() interfaces.SimulationRepository {
	return f.simulation
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
