package catalog

// Default returns the static print-shop catalog. The server never mutates
// product data at runtime; editing this list and restarting is the only way
// to change it.
func Default() *Catalog {
	return New([]Product{
		{
			ID:          "photo-1",
			Name:        "Golden Hour Coast",
			Description: "Pacific coastline at sunset, archival matte print, 12x18in.",
			PriceCents:  2999,
			Image:       "/images/photo-1.jpg",
		},
		{
			ID:          "photo-2",
			Name:        "High Sierra Ridgeline",
			Description: "Granite peaks above the treeline, archival matte print, 16x24in.",
			PriceCents:  3499,
			Image:       "/images/photo-2.jpg",
		},
		{
			ID:          "photo-3",
			Name:        "Fog Over the Valley",
			Description: "Morning fog rolling through an oak valley, archival matte print, 12x18in.",
			PriceCents:  2499,
			Image:       "/images/photo-3.jpg",
		},
		{
			ID:          "photo-4",
			Name:        "Desert Bloom",
			Description: "Wildflower super bloom in the high desert, archival matte print, 12x12in.",
			PriceCents:  1999,
			Image:       "/images/photo-4.jpg",
		},
		{
			ID:          "photo-5",
			Name:        "Night Harbor",
			Description: "Long exposure of a working harbor after dark, archival matte print, 16x24in.",
			PriceCents:  3999,
			Image:       "/images/photo-5.jpg",
		},
		{
			ID:          "photo-6",
			Name:        "Winter Birch",
			Description: "Birch stand in fresh snow, archival matte print, 12x18in.",
			PriceCents:  2799,
			Image:       "/images/photo-6.jpg",
		},
	})
}
