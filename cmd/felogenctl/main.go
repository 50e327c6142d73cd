package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"felogen/internal/genedef"
	"felogen/internal/model"
	"felogen/internal/validation"
	api "felogen/pkg/felogen"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "genes":
		return runGenes(ctx, args[1:])
	case "generate":
		return runGenerate(ctx, args[1:])
	case "add":
		return runAdd(ctx, args[1:])
	case "breed":
		return runBreed(ctx, args[1:])
	case "phenotype":
		return runPhenotype(ctx, args[1:])
	case "relatedness":
		return runRelatedness(ctx, args[1:])
	case "diversity":
		return runDiversity(ctx, args[1:])
	case "inbreeding":
		return runInbreeding(ctx, args[1:])
	case "completeness":
		return runCompleteness(ctx, args[1:])
	case "loops":
		return runLoops(ctx, args[1:])
	case "validate":
		return runValidate(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

// newClient parses the shared flags, builds a client over the configured
// store and loads the persisted snapshot.
func newClient(ctx context.Context, fs *flag.FlagSet, flags *clientFlags) (*api.Client, error) {
	opts, err := resolveOptions(fs, flags)
	if err != nil {
		return nil, err
	}
	client, err := api.New(opts)
	if err != nil {
		return nil, err
	}
	if err := client.Init(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	flags := addClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Save(ctx); err != nil {
		return err
	}
	fmt.Printf("initialized: %d genes in catalog\n", len(client.Genes()))
	return nil
}

func runGenes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("genes", flag.ContinueOnError)
	flags := addClientFlags(fs)
	addFile := fs.String("add-file", "", "gene document to merge into the catalog")
	remove := fs.String("remove", "", "gene id to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if *addFile != "" {
		data, err := os.ReadFile(*addFile)
		if err != nil {
			return err
		}
		store, err := genedef.DecodeCatalog(data)
		if err != nil {
			return err
		}
		for _, def := range store.Snapshot() {
			client.AddGene(def)
		}
		if err := client.Save(ctx); err != nil {
			return err
		}
	}
	if *remove != "" {
		if err := client.RemoveGene(*remove); err != nil {
			return err
		}
		if err := client.Save(ctx); err != nil {
			return err
		}
	}

	catalog := client.Genes()
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		def := catalog[id]
		linked := ""
		if def.XLinked {
			linked = " (X-linked)"
		}
		fmt.Printf("%s: %s [%s]%s\n", id, def.Name, strings.Join(def.Alleles, " "), linked)
	}
	return nil
}

func runGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := addClientFlags(fs)
	count := fs.Int("count", 1, "number of founders to generate")
	sexFlag := fs.String("sex", "", "founder sex: male|female (empty = random)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	founders, err := client.GenerateFounders(ctx, model.Sex(*sexFlag), *count)
	if err != nil {
		return err
	}
	for _, ind := range founders {
		fmt.Printf("%s %s build=%d size=%d\n", ind.ID, ind.Sex, ind.BuildValue, ind.SizeValue)
	}
	return nil
}

func runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	flags := addClientFlags(fs)
	file := fs.String("file", "", "individual JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return usageError("add requires -file")
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	var ind model.Individual
	if err := json.Unmarshal(data, &ind); err != nil {
		return fmt.Errorf("decode individual: %w", err)
	}

	report, err := client.AddIndividual(ctx, ind)
	if report != nil {
		printFindings(report)
	}
	if err != nil {
		return err
	}
	fmt.Printf("added %s\n", ind.ID)
	return nil
}

func runBreed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("breed", flag.ContinueOnError)
	flags := addClientFlags(fs)
	sire := fs.String("sire", "", "sire id")
	dam := fs.String("dam", "", "dam id")
	litter := fs.Int("litter", 4, "litter size")
	boost := fs.Float64("rarity-boost", 0, "rarity mutation boost (>1 enables)")
	date := fs.String("date", "", "birth date YYYY-MM-DD (empty = today)")
	allowRelated := fs.Bool("allow-related", false, "permit close-kin pairings")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sire == "" || *dam == "" {
		return usageError("breed requires -sire and -dam")
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := client.Breed(ctx, api.BreedRequest{
		SireID:       *sire,
		DamID:        *dam,
		LitterSize:   *litter,
		RarityBoost:  *boost,
		BirthDate:    *date,
		AllowRelated: *allowRelated,
	})
	if result.Report != nil {
		printFindings(result.Report)
	}
	if err != nil {
		return err
	}

	fmt.Printf("litter %s: %d kits\n", result.Litter.ID, len(result.Kits))
	for _, kit := range result.Kits {
		fmt.Printf("  %s %s\n", kit.ID, kit.Sex)
	}
	return nil
}

func runPhenotype(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("phenotype", flag.ContinueOnError)
	flags := addClientFlags(fs)
	id := fs.String("id", "", "individual id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return usageError("phenotype requires -id")
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	summary, err := client.Phenotype(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("coat: %s\n", summary.Coat)
	fmt.Printf("eyes: %s\n", summary.EyeColor)
	fmt.Printf("white: %d%%\n", summary.WhitePercentage)
	fmt.Printf("build: %s\n", summary.BuildCategory)
	fmt.Printf("size: %s\n", summary.SizeCategory)
	return nil
}

func runRelatedness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("relatedness", flag.ContinueOnError)
	flags := addClientFlags(fs)
	a := fs.String("a", "", "first individual id")
	b := fs.String("b", "", "second individual id")
	gens := fs.Int("generations", 0, "generation bound (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *a == "" || *b == "" {
		return usageError("relatedness requires -a and -b")
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	related, err := client.Relatedness(*a, *b, *gens)
	if err != nil {
		return err
	}
	fmt.Printf("related: %v\n", related)
	return nil
}

func runDiversity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("diversity", flag.ContinueOnError)
	flags := addClientFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	report := client.DiversityReport()
	fmt.Printf("population: %d (%d male / %d female), Ne=%.1f\n",
		report.Population.Total, report.Population.Males, report.Population.Females,
		report.Population.EffectiveSize)
	fmt.Printf("mean heterozygosity: %.3f\n", report.MeanHeterozygosity)
	fmt.Printf("status: %s\n", report.Status)
	for _, rare := range report.RareAlleles {
		fmt.Printf("rare: %s/%s %.3f (%d carriers)\n",
			rare.GeneID, rare.Allele, rare.Frequency, len(rare.CarrierIDs))
	}
	for _, founder := range report.Founders {
		fmt.Printf("founder %s: %.1f%% of population\n", founder.FounderID, founder.Percentage)
	}
	return nil
}

func runInbreeding(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inbreeding", flag.ContinueOnError)
	flags := addClientFlags(fs)
	id := fs.String("id", "", "individual id (empty = scan population)")
	threshold := fs.Float64("threshold", 0, "report threshold (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if *id != "" {
		f, err := client.InbreedingCoefficient(*id)
		if err != nil {
			return err
		}
		fmt.Printf("F(%s) = %.4f\n", *id, f)
		return nil
	}

	for _, record := range client.FindInbred(*threshold) {
		fmt.Printf("%s F=%.4f %s (common ancestors: %s)\n",
			record.ID, record.Coefficient, record.Relationship,
			strings.Join(record.CommonAncestors, ", "))
	}
	return nil
}

func runCompleteness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("completeness", flag.ContinueOnError)
	flags := addClientFlags(fs)
	id := fs.String("id", "", "individual id")
	gens := fs.Int("generations", 0, "generations to score (0 = default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return usageError("completeness requires -id")
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	completeness, err := client.Completeness(*id, *gens)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d/%d ancestors known (%.1f%%)\n",
		completeness.ID, completeness.KnownAncestors, completeness.ExpectedAncestors,
		completeness.Index*100)
	for _, gen := range completeness.ByGeneration {
		fmt.Printf("  generation %d: %d/%d (%.1f%%)\n",
			gen.Generation, gen.Actual, gen.Expected, gen.Percentage)
	}
	return nil
}

func runLoops(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("loops", flag.ContinueOnError)
	flags := addClientFlags(fs)
	id := fs.String("id", "", "individual id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return usageError("loops requires -id")
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	loops, err := client.PedigreeLoops(*id)
	if err != nil {
		return err
	}
	if len(loops) == 0 {
		fmt.Println("no pedigree loops")
		return nil
	}
	for _, loop := range loops {
		fmt.Printf("%s appears through %d lines\n", loop.AncestorID, loop.Occurrences)
	}
	return nil
}

func runValidate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := addClientFlags(fs)
	id := fs.String("id", "", "individual id (empty = whole population)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(ctx, fs, flags)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var report *validation.Report
	if *id != "" {
		report, err = client.ValidateIndividual(*id)
		if err != nil {
			return err
		}
	} else {
		report = client.ValidatePopulation()
	}

	printFindings(report)
	fmt.Println(report.Summary())
	if report.HasErrors() {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func printFindings(report *validation.Report) {
	for _, f := range report.Errors() {
		fmt.Fprintf(os.Stderr, "error: %s\n", f)
	}
	for _, f := range report.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", f)
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: felogenctl <init|genes|generate|add|breed|phenotype|relatedness|diversity|inbreeding|completeness|loops|validate> [flags]", msg)
}
