// Package felogen is the public facade over the genetics engines: gene
// catalog administration, population registry, breeding, phenotype queries
// and pedigree analytics, backed by a pluggable snapshot store.
package felogen

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"felogen/internal/breeding"
	"felogen/internal/genedef"
	"felogen/internal/model"
	"felogen/internal/pedigree"
	"felogen/internal/phenotype"
	"felogen/internal/registry"
	"felogen/internal/storage"
	"felogen/internal/validation"
)

const defaultDBPath = "felogen.db"

var (
	ErrNotFound         = errors.New("individual not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrGeneNotFound     = errors.New("gene not found")
)

type Options struct {
	StoreKind string
	DBPath    string
	// Seed fixes every stochastic draw; 0 seeds from the clock.
	Seed int64
}

// Client wires the engines around one registry and one store. It is not
// safe for concurrent use; the underlying random source is shared.
type Client struct {
	store storage.Store
	genes *genedef.Store
	pop   *registry.Registry

	breeder    *breeding.Engine
	coats      *phenotype.Engine
	inbreeding *pedigree.InbreedingCalculator
	diversity  *pedigree.DiversityAnalyzer
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	genes := genedef.NewDefaultStore()
	pop := registry.New()

	c := &Client{
		store:      store,
		genes:      genes,
		pop:        pop,
		breeder:    &breeding.Engine{Genes: genes, Rand: rand.New(rand.NewSource(seed))},
		coats:      &phenotype.Engine{Genes: genes, Rand: rand.New(rand.NewSource(seed + 1000))},
		inbreeding: pedigree.NewInbreedingCalculator(pop),
	}
	c.diversity = &pedigree.DiversityAnalyzer{Pop: pop, Genes: genes}

	// Every population mutation drops the memoized coefficients.
	pop.OnMutate(c.inbreeding.InvalidateCache)

	return c, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Init prepares the store and loads any persisted snapshot: the gene
// catalog document replaces the built-in defaults when present, and stored
// individuals populate the registry.
func (c *Client) Init(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return err
	}

	catalog, ok, err := c.store.GetGeneCatalog(ctx)
	if err != nil {
		return err
	}
	if ok {
		for _, def := range catalog {
			c.genes.Add(def)
		}
	}

	inds, err := c.store.ListIndividuals(ctx)
	if err != nil {
		return err
	}
	c.pop.Load(inds)
	return nil
}

// Save persists the current gene catalog and every registered individual.
func (c *Client) Save(ctx context.Context) error {
	if err := c.store.SaveGeneCatalog(ctx, c.genes.Snapshot()); err != nil {
		return err
	}
	for _, ind := range c.pop.All() {
		ind.VersionedRecord = storage.CurrentVersion()
		if err := c.store.SaveIndividual(ctx, ind); err != nil {
			return fmt.Errorf("save individual %s: %w", ind.ID, err)
		}
	}
	return nil
}

// Genes returns the catalog snapshot keyed by gene id.
func (c *Client) Genes() map[string]model.GeneDefinition {
	return c.genes.Snapshot()
}

func (c *Client) AddGene(def model.GeneDefinition) {
	c.genes.Add(def)
}

func (c *Client) UpdateGene(def model.GeneDefinition) error {
	if !c.genes.Update(def) {
		return fmt.Errorf("%w: %s", ErrGeneNotFound, def.ID)
	}
	return nil
}

func (c *Client) RemoveGene(geneID string) error {
	if !c.genes.Remove(geneID) {
		return fmt.Errorf("%w: %s", ErrGeneNotFound, geneID)
	}
	return nil
}

// AddIndividual validates and registers one individual. Error-severity
// findings block registration; warnings do not.
func (c *Client) AddIndividual(ctx context.Context, ind model.Individual) (*validation.Report, error) {
	if ind.ID == "" {
		ind.ID = breeding.NewIndividualID()
	}

	validator := &validation.IndividualValidator{Genes: c.genes, Pop: c.pop}
	report := validator.Validate(ind)
	if report.HasErrors() {
		return report, fmt.Errorf("%w: %s", ErrValidationFailed, report.Summary())
	}

	c.pop.Add(ind)
	ind.VersionedRecord = storage.CurrentVersion()
	if err := c.store.SaveIndividual(ctx, ind); err != nil {
		return report, err
	}
	return report, nil
}

func (c *Client) GetIndividual(id string) (model.Individual, error) {
	ind, ok := c.pop.Get(id)
	if !ok {
		return model.Individual{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return ind, nil
}

func (c *Client) ListIndividuals() []model.Individual {
	return c.pop.All()
}

func (c *Client) Search(query string) []model.Individual {
	return c.pop.Search(query)
}

func (c *Client) RemoveIndividual(ctx context.Context, id string) error {
	if !c.pop.Remove(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.store.DeleteIndividual(ctx, id)
}

// GenerateFounders mints count unrelated individuals with naturally
// weighted genotypes and registers them.
func (c *Client) GenerateFounders(ctx context.Context, sex model.Sex, count int) ([]model.Individual, error) {
	if count < 1 {
		return nil, errors.New("founder count must be >= 1")
	}

	out := make([]model.Individual, 0, count)
	for i := 0; i < count; i++ {
		ind, err := c.breeder.RandomFounder(sex)
		if err != nil {
			return nil, err
		}
		c.pop.Add(ind)
		ind.VersionedRecord = storage.CurrentVersion()
		if err := c.store.SaveIndividual(ctx, ind); err != nil {
			return nil, err
		}
		out = append(out, ind)
	}
	return out, nil
}

type BreedRequest struct {
	SireID      string
	DamID       string
	LitterSize  int
	RarityBoost float64
	BirthDate   string
	// AllowRelated downgrades close-inbreeding findings from blocking
	// errors to reported warnings.
	AllowRelated bool
}

type BreedResult struct {
	Litter model.LitterRecord
	Kits   []model.Individual
	Report *validation.Report
}

// Breed validates the pair, generates the litter, registers the kits and
// records the breeding event.
func (c *Client) Breed(ctx context.Context, req BreedRequest) (BreedResult, error) {
	if req.LitterSize < 1 {
		req.LitterSize = 1
	}
	if req.BirthDate == "" {
		req.BirthDate = time.Now().UTC().Format("2006-01-02")
	}

	pair := &validation.PairValidator{Pop: c.pop}
	report := pair.Validate(req.SireID, req.DamID)
	if report.HasErrors() {
		blocking := false
		for _, f := range report.Errors() {
			if f.Code != validation.CodeCloseInbreeding || !req.AllowRelated {
				blocking = true
			}
		}
		if blocking {
			return BreedResult{Report: report}, fmt.Errorf("%w: %s", ErrValidationFailed, report.Summary())
		}
	}

	sire, _ := c.pop.Get(req.SireID)
	dam, _ := c.pop.Get(req.DamID)

	kits, err := c.breeder.Breed(breeding.LitterRequest{
		Sire:        sire,
		Dam:         dam,
		LitterSize:  req.LitterSize,
		RarityBoost: req.RarityBoost,
		BirthDate:   req.BirthDate,
	})
	if err != nil {
		return BreedResult{Report: report}, err
	}

	litter := model.LitterRecord{
		VersionedRecord: storage.CurrentVersion(),
		ID:              breeding.NewIndividualID(),
		SireID:          req.SireID,
		DamID:           req.DamID,
		BirthDate:       req.BirthDate,
	}
	for _, kit := range kits {
		c.pop.Add(kit)
		litter.OffspringIDs = append(litter.OffspringIDs, kit.ID)
		kit.VersionedRecord = storage.CurrentVersion()
		if err := c.store.SaveIndividual(ctx, kit); err != nil {
			return BreedResult{Report: report}, err
		}
	}
	if err := c.store.SaveLitter(ctx, litter); err != nil {
		return BreedResult{Report: report}, err
	}

	return BreedResult{Litter: litter, Kits: kits, Report: report}, nil
}

func (c *Client) Litters(ctx context.Context) ([]model.LitterRecord, error) {
	return c.store.ListLitters(ctx)
}

type PhenotypeSummary struct {
	ID              string
	Coat            string
	EyeColor        string
	WhitePercentage int
	BuildCategory   string
	SizeCategory    string
}

// Phenotype describes one individual's expressed traits. The first call
// fixes the white percentage for the individual's lifetime; the updated
// record is written back to the registry and the store.
func (c *Client) Phenotype(ctx context.Context, id string) (PhenotypeSummary, error) {
	ind, ok := c.pop.Get(id)
	if !ok {
		return PhenotypeSummary{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	sampled := ind.WhitePercentage != nil

	summary := PhenotypeSummary{
		ID:              id,
		Coat:            c.coats.CalculatePhenotype(&ind),
		EyeColor:        c.coats.CalculateEyeColor(&ind),
		WhitePercentage: c.coats.WhitePercentage(&ind),
		BuildCategory:   phenotype.BuildCategory(ind.BuildValue),
		SizeCategory:    phenotype.SizeCategory(ind.SizeValue),
	}

	if !sampled {
		c.pop.Update(ind)
		ind.VersionedRecord = storage.CurrentVersion()
		if err := c.store.SaveIndividual(ctx, ind); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

// Relatedness reports kinship within the generation bound; 0 uses the
// default bound.
func (c *Client) Relatedness(id1, id2 string, generations int) (bool, error) {
	if _, ok := c.pop.Get(id1); !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id1)
	}
	if _, ok := c.pop.Get(id2); !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id2)
	}
	if generations <= 0 {
		generations = breeding.DefaultRelatednessGenerations
	}
	return breeding.CheckRelatedness(c.pop, id1, id2, generations), nil
}

func (c *Client) DiversityReport() pedigree.DiversityReport {
	return c.diversity.Report()
}

func (c *Client) InbreedingCoefficient(id string) (float64, error) {
	if _, ok := c.pop.Get(id); !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.inbreeding.Coefficient(id), nil
}

// FindInbred lists individuals above the threshold; 0 uses the first-cousin
// default.
func (c *Client) FindInbred(threshold float64) []model.InbredRecord {
	if threshold <= 0 {
		threshold = pedigree.DefaultInbredThreshold
	}
	return c.inbreeding.FindInbred(threshold)
}

func (c *Client) Completeness(id string, generations int) (model.Completeness, error) {
	if _, ok := c.pop.Get(id); !ok {
		return model.Completeness{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if generations <= 0 {
		generations = pedigree.DefaultCompletenessGenerations
	}
	return pedigree.Completeness(c.pop, id, generations), nil
}

func (c *Client) PedigreeLoops(id string) ([]model.PedigreeLoop, error) {
	if _, ok := c.pop.Get(id); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return pedigree.FindLoops(c.pop, id), nil
}

// ValidateIndividual re-runs the full validator on a registered individual.
func (c *Client) ValidateIndividual(id string) (*validation.Report, error) {
	ind, ok := c.pop.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	validator := &validation.IndividualValidator{Genes: c.genes, Pop: c.pop}
	return validator.Validate(ind), nil
}

func (c *Client) ValidatePopulation() *validation.Report {
	validator := &validation.PopulationValidator{Genes: c.genes, Pop: c.pop}
	return validator.Validate()
}

func (c *Client) ValidatePair(sireID, damID string) *validation.Report {
	pair := &validation.PairValidator{Pop: c.pop}
	return pair.Validate(sireID, damID)
}
