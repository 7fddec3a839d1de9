package commands

import (
	"context"
	"log"

	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample grocery catalog into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		n, err := services.NewProductService(store.Products, nil).Seed(ctx, sampleCatalog())
		if err != nil {
			return err
		}
		if n == 0 {
			log.Println("Catalog already has products; nothing seeded")
			return nil
		}
		log.Printf("Seeded %d products", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// placeholderImage is a 1x1 transparent PNG.
const placeholderImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

func sampleCatalog() []models.Product {
	products := []models.Product{
		{Name: "Organic Bananas", Category: "Fruits", Brand: "Sunny Farms", Price: 1.99, CountInStock: 120, IsFeatured: true,
			Description: "A bunch of ripe organic bananas, about six per bunch."},
		{Name: "Fresh Strawberries", Category: "Fruits", Brand: "Berry Hill", Price: 4.49, CountInStock: 40, IsFeatured: true,
			Description: "Sweet strawberries picked this week, 450g punnet."},
		{Name: "Hass Avocados", Category: "Fruits", Brand: "Green Valley", Price: 5.99, CountInStock: 60,
			Description: "Bag of four ready-to-eat avocados."},
		{Name: "Baby Spinach", Category: "Vegetables", Brand: "Leafy Co", Price: 3.29, CountInStock: 35,
			Description: "Washed baby spinach leaves, 200g."},
		{Name: "Vine Tomatoes", Category: "Vegetables", Brand: "Sunny Farms", Price: 2.79, CountInStock: 80, IsFeatured: true,
			Description: "Red tomatoes on the vine, 500g."},
		{Name: "Whole Milk", Category: "Dairy", Brand: "Meadow Fresh", Price: 4.29, CountInStock: 50,
			Description: "Full cream milk, 2 litres."},
		{Name: "Free Range Eggs", Category: "Dairy", Brand: "Happy Hens", Price: 6.49, CountInStock: 45, IsFeatured: true,
			Description: "A dozen large free range eggs."},
		{Name: "Greek Yogurt", Category: "Dairy", Brand: "Meadow Fresh", Price: 5.49, CountInStock: 30,
			Description: "Plain strained yogurt, 1kg tub."},
		{Name: "Sourdough Loaf", Category: "Bakery", Brand: "Stone Oven", Price: 6.99, CountInStock: 20,
			Description: "Naturally leavened sourdough, baked daily."},
		{Name: "Rolled Oats", Category: "Pantry", Brand: "Golden Grain", Price: 3.99, CountInStock: 70,
			Description: "Wholegrain rolled oats, 1kg."},
		{Name: "Extra Virgin Olive Oil", Category: "Pantry", Brand: "Olivia", Price: 12.99, CountInStock: 25,
			Description: "Cold pressed olive oil, 750ml."},
		{Name: "Ground Coffee", Category: "Beverages", Brand: "Morning Roast", Price: 9.99, CountInStock: 35, IsFeatured: true,
			Description: "Medium roast ground coffee, 500g."},
	}
	for i := range products {
		products[i].Image = placeholderImage
	}
	return products
}
