package phenotype

import (
	"testing"

	"felogen/internal/model"
)

// pigmentGenotype spreads homozygous eye-pigment and lipochrome alleles so
// the scores land on known values: E contributes 0.7, e 0.1, Lp 1.0, lp 0.1.
func pigmentGenotype(pigment, lipochrome string) model.Genotype {
	return model.Genotype{
		"eye_pigment_1": {pigment, pigment},
		"eye_pigment_2": {pigment, pigment},
		"eye_pigment_3": {pigment, pigment},
		"lipochrome":    {lipochrome, lipochrome},
	}
}

func TestPigmentScores(t *testing.T) {
	e := newEngine(1)

	high := pigmentGenotype("E", "Lp")
	if got := e.PigmentScore(high); got < 4.19 || got > 4.21 {
		t.Fatalf("six E alleles should score 4.2, got %v", got)
	}
	if got := e.LipochromeScore(high); got < 1.99 || got > 2.01 {
		t.Fatalf("Lp/Lp should score 2.0, got %v", got)
	}

	low := pigmentGenotype("e", "lp")
	if got := e.PigmentScore(low); got < 0.59 || got > 0.61 {
		t.Fatalf("six e alleles should score 0.6, got %v", got)
	}
	if got := e.LipochromeScore(low); got < 0.19 || got > 0.21 {
		t.Fatalf("lp/lp should score 0.2, got %v", got)
	}
}

func TestDominantWhiteEyeColors(t *testing.T) {
	e := newEngine(5)
	allowed := map[string]bool{
		"Blue":                            true,
		"Odd-Eyed (One Blue, One Copper)": true,
		"Copper":                          true,
		"Green":                           true,
	}

	seen := make(map[string]int)
	for i := 0; i < 2000; i++ {
		ind := individual(model.Male, model.Genotype{"white": {"Wd"}})
		color := e.CalculateEyeColor(ind)
		if !allowed[color] {
			t.Fatalf("unexpected dominant-white eye color %q", color)
		}
		seen[color]++
	}
	if len(seen) != 4 {
		t.Fatalf("expected all four outcomes over 2000 draws, saw %v", seen)
	}
	if r := float64(seen["Blue"]) / 2000; r < 0.44 || r > 0.56 {
		t.Fatalf("Blue should dominate at ~0.50, got %.3f", r)
	}
}

func TestAlbinoEyeColors(t *testing.T) {
	e := newEngine(9)
	allowed := map[string]bool{"Pale Blue": true, "Lilac-Blue": true, "Pink": true}

	for i := 0; i < 500; i++ {
		ind := individual(model.Male, model.Genotype{"color_restriction": {"c", "c"}})
		if color := e.CalculateEyeColor(ind); !allowed[color] {
			t.Fatalf("unexpected albino eye color %q", color)
		}
	}
}

func TestColorpointBandsAreDeterministic(t *testing.T) {
	e := newEngine(1)
	cases := []struct {
		pigment string
		want    string
	}{
		{"e", "Pale Blue"},     // score 0.6
		{"E", "Sapphire Blue"}, // score 4.2
	}
	for _, tc := range cases {
		genotype := pigmentGenotype(tc.pigment, "lp")
		genotype["color_restriction"] = []string{"cs", "cs"}
		ind := individual(model.Male, genotype)
		if got := e.CalculateEyeColor(ind); got != tc.want {
			t.Fatalf("colorpoint pigment %s = %q, want %q", tc.pigment, got, tc.want)
		}
	}
}

func TestMinkBands(t *testing.T) {
	e := newEngine(1)
	genotype := pigmentGenotype("e", "lp")
	genotype["color_restriction"] = []string{"cs", "cb"}
	ind := individual(model.Male, genotype)
	if got := e.CalculateEyeColor(ind); got != "Pale Aqua" {
		t.Fatalf("low-pigment mink = %q, want Pale Aqua", got)
	}

	genotype = pigmentGenotype("E", "lp")
	genotype["color_restriction"] = []string{"cs", "cb"}
	ind = individual(model.Male, genotype)
	if got := e.CalculateEyeColor(ind); got != "Deep Aqua" {
		t.Fatalf("high-pigment mink = %q, want Deep Aqua", got)
	}
}

func TestSepiaLipochromeBranch(t *testing.T) {
	e := newEngine(1)
	genotype := pigmentGenotype("E", "Lp")
	genotype["color_restriction"] = []string{"cb", "cb"}
	ind := individual(model.Male, genotype)
	if got := e.CalculateEyeColor(ind); got != "Copper" {
		t.Fatalf("high-pigment lipochrome sepia = %q, want Copper", got)
	}

	allowed := map[string]bool{"Greenish-Blue": true, "Pale Yellow-Green": true}
	for i := 0; i < 100; i++ {
		genotype = pigmentGenotype("e", "lp")
		genotype["color_restriction"] = []string{"cb", "cb"}
		ind = individual(model.Male, genotype)
		if got := e.CalculateEyeColor(ind); !allowed[got] {
			t.Fatalf("low-pigment sepia = %q, want one of %v", got, allowed)
		}
	}
}

func TestPolygenicLipochromeBranch(t *testing.T) {
	e := newEngine(1)

	ind := individual(model.Male, pigmentGenotype("e", "Lp"))
	if got := e.CalculateEyeColor(ind); got != "Gold" {
		t.Fatalf("low-pigment lipochrome = %q, want Gold", got)
	}

	ind = individual(model.Male, pigmentGenotype("E", "Lp"))
	if got := e.CalculateEyeColor(ind); got != "Deep Copper" {
		t.Fatalf("high-pigment lipochrome = %q, want Deep Copper", got)
	}
}

func TestPolygenicLowPigmentSet(t *testing.T) {
	e := newEngine(21)
	allowed := map[string]bool{"Blue": true, "Blue-Grey": true, "Grey-Blue": true}
	for i := 0; i < 200; i++ {
		ind := individual(model.Male, pigmentGenotype("e", "lp"))
		if got := e.CalculateEyeColor(ind); !allowed[got] {
			t.Fatalf("low-pigment polygenic = %q, want one of %v", got, allowed)
		}
	}
}

func TestDoubleSpottingFallsThrough(t *testing.T) {
	e := newEngine(33)
	special := map[string]bool{
		"Blue":                            true,
		"Odd-Eyed (One Blue, One Green)":  true,
		"Odd-Eyed (One Blue, One Copper)": true,
	}
	lowSet := map[string]bool{"Blue": true, "Blue-Grey": true, "Grey-Blue": true}

	specialCount := 0
	for i := 0; i < 3000; i++ {
		genotype := pigmentGenotype("e", "lp")
		genotype["white"] = []string{"Ws", "Ws"}
		ind := individual(model.Male, genotype)
		got := e.CalculateEyeColor(ind)
		if !special[got] && !lowSet[got] {
			t.Fatalf("double-spotting eye color %q outside both branches", got)
		}
		if got == "Odd-Eyed (One Blue, One Green)" || got == "Odd-Eyed (One Blue, One Copper)" {
			specialCount++
		}
	}
	// The 35% override surfaces odd-eyed outcomes the fall-through path
	// cannot produce here.
	if specialCount == 0 {
		t.Fatal("expected the spotting override branch to fire over 3000 draws")
	}
}
