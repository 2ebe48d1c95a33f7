package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novastreet/storefront/app/models"
	"github.com/novastreet/storefront/app/repositories"
	"github.com/novastreet/storefront/config"
	"github.com/novastreet/storefront/pkg/database"
)

func pf(v float64) *float64 { return &v }

var sampleProducts = []models.Product{
	{
		Name:        "Classic Cotton Tee",
		Description: "A plain-weave cotton tee in a relaxed fit.",
		Image:       "/default-product-image.jpg",
		SubImages:   []string{},
		Price:       499,
		Discount:    pf(399),
		Category:    "t-shirts",
		Sizes:       []string{"S", "M", "L", "XL"},
		Stock:       models.StockIn,
	},
	{
		Name:        "Linen Summer Shirt",
		Description: "Breathable linen shirt for warm weather.",
		Image:       "/default-product-image.jpg",
		SubImages:   []string{},
		Price:       1299,
		Category:    "shirts",
		Sizes:       []string{"M", "L"},
		Stock:       models.StockIn,
	},
	{
		Name:        "Denim Jacket",
		Description: "Mid-wash denim jacket with button front.",
		Image:       "/default-product-image.jpg",
		SubImages:   []string{},
		Price:       2499,
		Category:    "jackets",
		Sizes:       []string{"S", "M", "L"},
		Stock:       models.StockOut,
	},
}

// storefront seed — insert sample catalog records.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample products into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := database.Connect(ctx); err != nil {
			return err
		}
		defer database.Disconnect(context.Background()) //nolint:errcheck

		repo := repositories.NewProductRepository()
		for i := range sampleProducts {
			p := sampleProducts[i]
			if err := repo.Insert(ctx, &p); err != nil {
				return err
			}
			fmt.Printf("seeded %s (%s)\n", p.Name, p.ID.Hex())
		}
		fmt.Printf("done: %d products\n", len(sampleProducts))
		return nil
	},
}
