// Package catalog holds the default NYC study spot catalog used to seed an empty store.
package catalog

import "github.com/jengzang/studyspots-backend-go/internal/models"

type entry struct {
	key, name, category, neighborhood, address string
	description                                string
	hours, noise                               string
	wifi, outlets                              bool
	lat, lon                                   float64
}

var defaultEntries = []entry{
	{"spot:1", "The New York Public Library - Stephen A. Schwarzman Building", models.CategoryLibrary, "Midtown Manhattan", "476 5th Ave, New York, NY 10018",
		"Iconic library with stunning reading rooms and free WiFi. Perfect for focused studying.",
		"Mon-Sat: 10AM-6PM, Sun: 1PM-5PM", models.NoiseQuiet, true, true, 40.7532, -73.9822},
	{"spot:2", "Brooklyn Public Library - Central Library", models.CategoryLibrary, "Prospect Heights", "10 Grand Army Plaza, Brooklyn, NY 11238",
		"Beautiful library with spacious study areas and excellent natural lighting.",
		"Mon-Thu: 9AM-9PM, Fri-Sat: 9AM-6PM, Sun: 1PM-5PM", models.NoiseQuiet, true, true, 40.6725, -73.9682},
	{"spot:3", "Jefferson Market Library", models.CategoryLibrary, "Greenwich Village", "425 6th Ave, New York, NY 10011",
		"Historic Gothic Revival building with quiet study spaces and great architecture.",
		"Mon, Wed: 10AM-8PM, Tue, Thu: 10AM-6PM, Fri-Sat: 10AM-5PM", models.NoiseQuiet, true, true, 40.7350, -73.9996},
	{"spot:4", "Queens Public Library - Flushing Branch", models.CategoryLibrary, "Flushing", "41-17 Main St, Flushing, NY 11355",
		"Large modern library with dedicated study rooms and extensive resources.",
		"Mon-Thu: 10AM-9PM, Fri-Sat: 10AM-5PM, Sun: 1PM-5PM", models.NoiseQuiet, true, true, 40.7590, -73.8303},
	{"spot:5", "Science, Industry and Business Library (SIBL)", models.CategoryLibrary, "Midtown Manhattan", "188 Madison Ave, New York, NY 10016",
		"Modern business-focused library with tech resources and collaborative spaces.",
		"Mon, Thu-Sat: 10AM-6PM, Tue-Wed: 10AM-8PM", models.NoiseLow, true, true, 40.7444, -73.9825},
	{"spot:6", "Think Coffee", models.CategoryCafe, "Greenwich Village", "248 Mercer St, New York, NY 10012",
		"Popular coffee shop near NYU with plenty of seating and good atmosphere for studying.",
		"Daily: 7AM-10PM", models.NoiseModerate, true, true, 40.7282, -73.9960},
	{"spot:7", "Starbucks Reserve Roastery", models.CategoryCafe, "Chelsea", "61 9th Ave, New York, NY 10011",
		"Upscale Starbucks with multiple floors, great for group study or solo work.",
		"Daily: 7AM-10PM", models.NoiseModerate, true, true, 40.7420, -74.0060},
	{"spot:8", "Joe Coffee - West Village", models.CategoryCafe, "West Village", "141 Waverly Pl, New York, NY 10014",
		"Cozy neighborhood coffee shop with friendly atmosphere and good espresso.",
		"Daily: 7AM-8PM", models.NoiseModerate, true, true, 40.7338, -74.0006},
	{"spot:9", "Birch Coffee", models.CategoryCafe, "Flatiron", "134 1/2 W 17th St, New York, NY 10011",
		"Small batch coffee roaster with minimalist design and quiet study nooks.",
		"Mon-Fri: 7AM-7PM, Sat-Sun: 8AM-7PM", models.NoiseLow, true, true, 40.7400, -73.9960},
	{"spot:10", "Bluestone Lane", models.CategoryCafe, "Upper West Side", "2090 Broadway, New York, NY 10023",
		"Australian-inspired cafe with spacious seating and excellent natural light.",
		"Daily: 7AM-7PM", models.NoiseModerate, true, true, 40.7784, -73.9819},
	{"spot:11", "Panera Bread - Union Square", models.CategoryRestaurant, "Union Square", "7 E 14th St, New York, NY 10003",
		"Chain restaurant with reliable WiFi, comfortable booths, and all-day dining options.",
		"Daily: 7AM-9PM", models.NoiseModerate, true, true, 40.7354, -73.9910},
	{"spot:12", "Sweetgreen", models.CategoryRestaurant, "NoMad", "1164 Broadway, New York, NY 10001",
		"Healthy fast-casual spot with communal tables perfect for laptop work.",
		"Daily: 10:30AM-10PM", models.NoiseModerate, true, true, 40.7455, -73.9881},
	{"spot:13", "Le Pain Quotidien", models.CategoryRestaurant, "Upper East Side", "1131 Madison Ave, New York, NY 10028",
		"Belgian bakery-restaurant with communal tables and cozy atmosphere.",
		"Daily: 8AM-8PM", models.NoiseLow, true, true, 40.7815, -73.9587},
	{"spot:14", "Chipotle Mexican Grill", models.CategoryRestaurant, "Financial District", "150 Broadway, New York, NY 10038",
		"Fast-casual with spacious second-floor seating and reliable WiFi.",
		"Daily: 10:45AM-10PM", models.NoiseModerate, true, true, 40.7094, -74.0101},
	{"spot:15", "Dig Inn", models.CategoryRestaurant, "Midtown East", "401 Park Ave S, New York, NY 10016",
		"Farm-to-table restaurant with comfortable seating and power outlets.",
		"Daily: 11AM-9PM", models.NoiseModerate, true, true, 40.7452, -73.9836},
	{"spot:16", "Two Hands", models.CategoryRestaurant, "Tribeca", "164 Mott St, New York, NY 10013",
		"Australian cafe with all-day breakfast and laptop-friendly atmosphere.",
		"Daily: 8AM-5PM", models.NoiseModerate, true, true, 40.7212, -73.9956},
	{"spot:17", "The Smith", models.CategoryRestaurant, "Midtown", "956 2nd Ave, New York, NY 10022",
		"American brasserie with spacious booths and work-friendly during off-peak hours.",
		"Mon-Fri: 7:30AM-11PM, Sat-Sun: 10AM-11PM", models.NoiseModerate, true, true, 40.7589, -73.9658},
	{"spot:18", "Pret A Manger", models.CategoryRestaurant, "Chelsea", "220 W 23rd St, New York, NY 10011",
		"British sandwich chain with comfortable seating and quiet corners.",
		"Mon-Fri: 6:30AM-8PM, Sat-Sun: 7AM-7PM", models.NoiseLow, true, true, 40.7445, -73.9974},
	{"spot:19", "Bryant Park", models.CategoryPark, "Midtown Manhattan", "42nd St & 6th Ave, New York, NY 10018",
		"Beautiful urban park with free WiFi, movable chairs, and seasonal reading room.",
		"Daily: 7AM-10PM", models.NoiseLow, true, false, 40.7536, -73.9832},
	{"spot:20", "Washington Square Park", models.CategoryPark, "Greenwich Village", "5th Ave & Washington Square N, New York, NY 10011",
		"Historic park near NYU with benches and tables, great for outdoor study sessions.",
		"Daily: 6AM-12AM", models.NoiseModerate, false, false, 40.7308, -73.9973},
	{"spot:21", "Madison Square Park", models.CategoryPark, "Flatiron", "Madison Ave & E 23rd St, New York, NY 10010",
		"Peaceful park with benches, tables, and beautiful landscaping.",
		"Daily: 6AM-11PM", models.NoiseLow, false, false, 40.7425, -73.9887},
	{"spot:22", "Brooklyn Bridge Park", models.CategoryPark, "Brooklyn Heights", "334 Furman St, Brooklyn, NY 11201",
		"Waterfront park with stunning Manhattan views and quiet spots for reading.",
		"Daily: 6AM-1AM", models.NoiseLow, false, false, 40.7023, -73.9966},
	{"spot:23", "Central Park - Conservatory Garden", models.CategoryPark, "Upper East Side", "1 E 105th St, New York, NY 10029",
		"Formal garden within Central Park offering peaceful, quiet study environment.",
		"Daily: 8AM-Dusk", models.NoiseQuiet, false, false, 40.7947, -73.9516},
	{"spot:24", "The High Line", models.CategoryPark, "Chelsea", "Gansevoort St to 34th St, New York, NY 10011",
		"Elevated park with benches, art installations, and unique city views.",
		"Daily: 7AM-10PM", models.NoiseLow, false, false, 40.7480, -74.0048},
	{"spot:25", "Fort Tryon Park", models.CategoryPark, "Washington Heights", "Riverside Dr to Broadway, New York, NY 10040",
		"Hilltop park with quiet spots, beautiful views, and The Met Cloisters.",
		"Daily: 6AM-1AM", models.NoiseQuiet, false, false, 40.8592, -73.9320},
	{"spot:26", "WeWork SoHo", models.CategoryCoworking, "SoHo", "115 Broadway, New York, NY 10006",
		"Professional co-working environment with fast internet and comfortable seating.",
		"Mon-Fri: 9AM-6PM", models.NoiseLow, true, true, 40.7089, -74.0105},
	{"spot:27", "New York Public Library - Stavros Niarchos Foundation Library", models.CategoryLibrary, "Midtown Manhattan", "455 5th Ave, New York, NY 10016",
		"Modern library branch with tech-friendly spaces and collaborative study areas.",
		"Mon-Sat: 10AM-6PM, Sun: 1PM-5PM", models.NoiseLow, true, true, 40.7485, -73.9835},
	{"spot:28", "Greenlight Bookstore Cafe", models.CategoryCafe, "Fort Greene", "686 Fulton St, Brooklyn, NY 11217",
		"Independent bookstore with cafe, perfect for reading and light studying.",
		"Daily: 10AM-9PM", models.NoiseLow, true, true, 40.6867, -73.9814},
	{"spot:29", "Variety Coffee Roasters", models.CategoryCafe, "Williamsburg", "146 Wythe Ave, Brooklyn, NY 11249",
		"Specialty coffee shop with industrial design and dedicated work space.",
		"Daily: 7AM-6PM", models.NoiseModerate, true, true, 40.7169, -73.9573},
	{"spot:30", "Whole Foods Market - Union Square", models.CategoryRestaurant, "Union Square", "4 Union Square S, New York, NY 10003",
		"Grocery store with spacious seating area, food options, and WiFi.",
		"Daily: 8AM-11PM", models.NoiseModerate, true, true, 40.7347, -73.9907},
}

// Default returns a fresh copy of the default catalog
func Default() []models.StudySpot {
	spots := make([]models.StudySpot, 0, len(defaultEntries))
	for _, e := range defaultEntries {
		spots = append(spots, e.spot())
	}
	return spots
}

func (e entry) spot() models.StudySpot {
	address, description, hours, noise := e.address, e.description, e.hours, e.noise
	lat, lon := e.lat, e.lon
	return models.StudySpot{
		Key:          e.key,
		Name:         e.name,
		Category:     e.category,
		Neighborhood: e.neighborhood,
		Address:      &address,
		WiFi:         e.wifi,
		Outlets:      e.outlets,
		Noise:        &noise,
		Hours:        &hours,
		Latitude:     &lat,
		Longitude:    &lon,
		Description:  &description,
	}
}
