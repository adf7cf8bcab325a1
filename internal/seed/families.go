package seed

import (
	"context"
	"fmt"

	"plumbfam/internal/store"
	"plumbfam/pkg/types"

	"github.com/k0kubun/pp/v3"
)

// SeedFamilies inserts the sample records below for local development.
// Records whose family name already exists are skipped, so the command is
// safe to run repeatedly. URLs point at placeholder objects; uploads made
// through the form get real storage URLs.
func SeedFamilies(ctx context.Context, repo *store.FamilyRepository) error {
	families := []types.Family{
		{
			FamilyName: "Ball Valve",
			Category:   types.CategoryPipeFitting,
			ImageURL:   "https://placehold.co/600x600/png?text=Ball+Valve",
			RvtFileURL: "https://placehold.co/600x600/png?text=ball-valve.rvt",
			Rating:     4,
			UserID:     "seed",
		},
		{
			FamilyName: "Copper Elbow 90",
			Category:   types.CategoryPipeFitting,
			ImageURL:   "https://placehold.co/600x600/png?text=Copper+Elbow",
			RvtFileURL: "https://placehold.co/600x600/png?text=copper-elbow.rvt",
			Rating:     5,
			UserID:     "seed",
		},
		{
			FamilyName: "Pipe Hanger Clamp",
			Category:   types.CategoryPipeAccessories,
			ImageURL:   "https://placehold.co/600x600/png?text=Pipe+Hanger",
			RvtFileURL: "https://placehold.co/600x600/png?text=pipe-hanger.rvt",
			Rating:     3,
			UserID:     "seed",
		},
		{
			FamilyName: "Circulation Pump",
			Category:   types.CategoryMechanicalEquipment,
			ImageURL:   "https://placehold.co/600x600/png?text=Circulation+Pump",
			RvtFileURL: "https://placehold.co/600x600/png?text=circulation-pump.rvt",
			Rating:     4,
			UserID:     "seed",
		},
		{
			FamilyName: "Grease Interceptor",
			Category:   types.CategorySpecialtyEquipment,
			ImageURL:   "https://placehold.co/600x600/png?text=Grease+Interceptor",
			RvtFileURL: "https://placehold.co/600x600/png?text=grease-interceptor.rvt",
			Rating:     2,
			UserID:     "seed",
		},
		{
			FamilyName: "Web Stiffener Plate",
			Category:   types.CategoryStructuralStiffeners,
			ImageURL:   "https://placehold.co/600x600/png?text=Web+Stiffener",
			RvtFileURL: "https://placehold.co/600x600/png?text=web-stiffener.rvt",
			Rating:     3,
			UserID:     "seed",
		},
	}

	existing, err := repo.AllFamilies(ctx)
	if err != nil {
		return fmt.Errorf("fetch existing families: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, family := range existing {
		known[family.FamilyName] = true
	}

	for i := range families {
		if known[families[i].FamilyName] {
			continue
		}

		if err := repo.CreateFamily(ctx, &families[i]); err != nil {
			return fmt.Errorf("seed family %q: %w", families[i].FamilyName, err)
		}

		pp.Println(families[i].ID, families[i].FamilyName)
	}

	return nil
}
