package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/domain/entity"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/pricing"
)

// Seed data served when the catalog store is unreachable. The functions
// return fresh slices so callers may modify them.

type seedService struct {
	id, name, description, base, perBedroom, perBathroom, categoryID string
	duration                                                         int
}

var seedServices = []seedService{
	{id: "880e8400-e29b-41d4-a716-446655440001", name: "Standard House Cleaning", description: "Regular house cleaning including living areas, bedrooms, and bathrooms", base: "450", perBedroom: "60", perBathroom: "90", duration: 120, categoryID: "770e8400-e29b-41d4-a716-446655440001"},
	{id: "880e8400-e29b-41d4-a716-446655440002", name: "Premium House Cleaning", description: "Comprehensive house cleaning with attention to detail", base: "750", perBedroom: "90", perBathroom: "120", duration: 180, categoryID: "770e8400-e29b-41d4-a716-446655440001"},
	{id: "880e8400-e29b-41d4-a716-446655440003", name: "Office Cleaning", description: "Professional office cleaning including desks, floors, and common areas", base: "600", perBedroom: "", perBathroom: "", duration: 90, categoryID: "770e8400-e29b-41d4-a716-446655440002"},
	{id: "880e8400-e29b-41d4-a716-446655440004", name: "Commercial Cleaning", description: "Large commercial space cleaning", base: "1050", perBedroom: "", perBathroom: "", duration: 240, categoryID: "770e8400-e29b-41d4-a716-446655440002"},
	{id: "880e8400-e29b-41d4-a716-446655440005", name: "Deep House Cleaning", description: "Intensive cleaning including inside appliances, cabinets, and detailed scrubbing", base: "1200", perBedroom: "150", perBathroom: "180", duration: 300, categoryID: "770e8400-e29b-41d4-a716-446655440003"},
	{id: "880e8400-e29b-41d4-a716-446655440006", name: "Move-in/Move-out Cleaning", description: "Complete cleaning for moving in or out of property", base: "1050", perBedroom: "120", perBathroom: "150", duration: 240, categoryID: "770e8400-e29b-41d4-a716-446655440003"},
	{id: "880e8400-e29b-41d4-a716-446655440007", name: "Post-Construction Cleaning", description: "Specialized cleaning after construction or renovation work", base: "1500", perBedroom: "180", perBathroom: "240", duration: 360, categoryID: "770e8400-e29b-41d4-a716-446655440004"},
}

var seedExtras = []struct{ id, name, description, price string }{
	{"ee0e8400-e29b-41d4-a716-446655440001", "Window Cleaning", "Professional window cleaning inside and out", "150"},
	{"ee0e8400-e29b-41d4-a716-446655440002", "Oven Cleaning", "Deep cleaning of oven interior and exterior", "200"},
	{"ee0e8400-e29b-41d4-a716-446655440003", "Refrigerator Cleaning", "Complete refrigerator cleaning and sanitization", "180"},
	{"ee0e8400-e29b-41d4-a716-446655440004", "Carpet Cleaning", "Professional carpet cleaning and stain removal", "300"},
	{"ee0e8400-e29b-41d4-a716-446655440005", "Garage Cleaning", "Complete garage cleaning and organization", "250"},
	{"ee0e8400-e29b-41d4-a716-446655440006", "Balcony Cleaning", "Outdoor balcony and patio cleaning", "120"},
	{"ee0e8400-e29b-41d4-a716-446655440007", "Laundry Service", "Wash, dry, and fold laundry service", "100"},
	{"ee0e8400-e29b-41d4-a716-446655440008", "Pet Hair Removal", "Specialized pet hair removal from furniture and carpets", "80"},
}

var seedRegions = []struct{ id, name, description string }{
	{"990e8400-e29b-41d4-a716-446655440001", "Western Cape", "Province including Cape Town and surrounding areas"},
	{"990e8400-e29b-41d4-a716-446655440002", "Gauteng", "Province including Johannesburg and Pretoria"},
	{"990e8400-e29b-41d4-a716-446655440003", "KwaZulu-Natal", "Province including Durban and Pietermaritzburg"},
	{"990e8400-e29b-41d4-a716-446655440004", "Eastern Cape", "Province including Port Elizabeth and East London"},
	{"990e8400-e29b-41d4-a716-446655440005", "Free State", "Province including Bloemfontein"},
	{"990e8400-e29b-41d4-a716-446655440006", "Limpopo", "Northern province including Polokwane"},
	{"990e8400-e29b-41d4-a716-446655440007", "Mpumalanga", "Province including Nelspruit and Witbank"},
	{"990e8400-e29b-41d4-a716-446655440008", "North West", "Province including Mahikeng and Rustenburg"},
	{"990e8400-e29b-41d4-a716-446655440009", "Northern Cape", "Province including Kimberley and Upington"},
}

var seedSuburbs = []struct {
	id, name string
	region int
}{
	{"aa0e8400-e29b-41d4-a716-446655440001", "Cape Town CBD", 0},
	{"aa0e8400-e29b-41d4-a716-446655440002", "Sea Point", 0},
	{"aa0e8400-e29b-41d4-a716-446655440003", "Green Point", 0},
	{"aa0e8400-e29b-41d4-a716-446655440004", "Camps Bay", 0},
	{"aa0e8400-e29b-41d4-a716-446655440005", "Claremont", 0},
	{"aa0e8400-e29b-41d4-a716-446655440006", "Rondebosch", 0},
	{"aa0e8400-e29b-41d4-a716-446655440007", "Newlands", 0},
	{"aa0e8400-e29b-41d4-a716-446655440008", "Constantia", 0},
	{"aa0e8400-e29b-41d4-a716-446655440009", "Hout Bay", 0},
	{"aa0e8400-e29b-41d4-a716-446655440010", "Stellenbosch", 0},
	{"aa0e8400-e29b-41d4-a716-446655440011", "Sandton", 1},
	{"aa0e8400-e29b-41d4-a716-446655440012", "Rosebank", 1},
	{"aa0e8400-e29b-41d4-a716-446655440013", "Melville", 1},
	{"aa0e8400-e29b-41d4-a716-446655440014", "Pretoria CBD", 1},
	{"aa0e8400-e29b-41d4-a716-446655440015", "Durban CBD", 2},
	{"aa0e8400-e29b-41d4-a716-446655440016", "Umhlanga", 2},
	{"aa0e8400-e29b-41d4-a716-446655440017", "Pietermaritzburg", 2},
}

var seedCleaners = []struct {
	id, firstName, lastName, bio, rate string
	rating                             float64
	jobs                               int
}{
	{"cc0e8400-e29b-41d4-a716-446655440001", "Sarah", "Johnson", "Professional cleaner with 5+ years experience. Specializes in deep cleaning and organization. Certified in eco-friendly cleaning methods.", "120", 4.8, 156},
	{"cc0e8400-e29b-41d4-a716-446655440002", "Michael", "Brown", "Experienced cleaner with attention to detail. Available for both residential and commercial cleaning. Background in hospitality cleaning.", "110", 4.6, 89},
	{"cc0e8400-e29b-41d4-a716-446655440003", "Emily", "Davis", "Reliable and thorough cleaner with eco-friendly cleaning products. Great with pets and children. Flexible scheduling available.", "125", 4.9, 203},
	{"cc0e8400-e29b-41d4-a716-446655440004", "David", "Wilson", "Professional cleaner specializing in post-construction cleanup and deep cleaning services. 8+ years experience in commercial spaces.", "130", 4.7, 134},
	{"cc0e8400-e29b-41d4-a716-446655440005", "Lisa", "Anderson", "Experienced cleaner with flexible scheduling. Specializes in move-in/move-out cleaning. Background in property management.", "115", 4.5, 78},
	{"cc0e8400-e29b-41d4-a716-446655440006", "James", "Taylor", "Professional cleaner with expertise in coastal property maintenance. Specializes in humidity-resistant cleaning methods.", "118", 4.6, 92},
	{"cc0e8400-e29b-41d4-a716-446655440007", "Maria", "Garcia", "Detail-oriented cleaner with 6+ years experience. Specializes in luxury home cleaning and maintenance.", "135", 4.8, 167},
	{"cc0e8400-e29b-41d4-a716-446655440008", "Robert", "Miller", "Professional cleaner with industrial cleaning background. Specializes in large residential properties and commercial spaces.", "128", 4.7, 145},
	{"cc0e8400-e29b-41d4-a716-446655440009", "Jennifer", "White", "Experienced cleaner with focus on sustainable cleaning practices. Certified in green cleaning methods and eco-friendly products.", "122", 4.9, 189},
	{"cc0e8400-e29b-41d4-a716-446655440010", "William", "Harris", "Reliable cleaner with flexible availability. Specializes in regular maintenance cleaning and emergency cleaning services.", "105", 4.4, 67},
}

func SeedServices() []entity.Service {
	out := make([]entity.Service, 0, len(seedServices))
	for _, s := range seedServices {
		svc := entity.Service{
			ID:               s.id,
			Name:             s.name,
			Slug:             pricing.ServiceSlug(s.name),
			Description:      strRef(s.description),
			CategoryID:       strRef(s.categoryID),
			BasePrice:        decimal.RequireFromString(s.base),
			PerBedroomPrice:  decRef(s.perBedroom),
			PerBathroomPrice: decRef(s.perBathroom),
			DurationMinutes:  s.duration,
			IsActive:         true,
		}
		out = append(out, svc)
	}
	return out
}

func SeedExtras() []entity.Extra {
	out := make([]entity.Extra, 0, len(seedExtras))
	for _, e := range seedExtras {
		out = append(out, entity.Extra{
			ID:          e.id,
			Name:        e.name,
			Description: strRef(e.description),
			Price:       decimal.RequireFromString(e.price),
			IsActive:    true,
		})
	}
	return out
}

func SeedRegions() []entity.Region {
	out := make([]entity.Region, 0, len(seedRegions))
	for _, r := range seedRegions {
		out = append(out, entity.Region{ID: r.id, Name: r.name, Description: strRef(r.description), IsActive: true})
	}
	return out
}

func SeedSuburbs() []entity.Suburb {
	out := make([]entity.Suburb, 0, len(seedSuburbs))
	for _, s := range seedSuburbs {
		region := seedRegions[s.region]
		out = append(out, entity.Suburb{
			ID:       s.id,
			Name:     s.name,
			RegionID: region.id,
			IsActive: true,
			Region:   entity.RegionRef{ID: region.id, Name: region.name},
		})
	}
	return out
}

// SeedCleaners have no region assignments, so they serve every region.
func SeedCleaners() []entity.Cleaner {
	out := make([]entity.Cleaner, 0, len(seedCleaners))
	for _, c := range seedCleaners {
		rating := c.rating
		jobs := c.jobs
		out = append(out, entity.Cleaner{
			ID:          c.id,
			FirstName:   strRef(c.firstName),
			LastName:    strRef(c.lastName),
			Bio:         strRef(c.bio),
			HourlyRate:  decimal.RequireFromString(c.rate),
			Rating:      &rating,
			TotalJobs:   &jobs,
			IsAvailable: true,
		})
	}
	return out
}

func strRef(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func decRef(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d := decimal.RequireFromString(s)
	return &d
}
