package booking

import "servicehub/models"

// The fixed service catalog offered by the wizard. Profession is what a
// matching provider is expected to carry in their profile.
var serviceCatalog = []models.ServiceOption{
	{ID: 1, Key: "plumbing", Name: "Emergency Plumbing Service", Profession: "Plumbing", Price: 89},
	{ID: 2, Key: "cleaning", Name: "Complete Home Cleaning", Profession: "Cleaning", Price: 129},
	{ID: 3, Key: "electrical", Name: "Electrical Installation", Profession: "Electrical", Price: 149},
	{ID: 4, Key: "snow_removal", Name: "Snow Removal Service", Profession: "Snow Removal", Price: 49},
	{ID: 5, Key: "painting", Name: "Painting", Profession: "Painting", Price: 199},
	{ID: 6, Key: "appliance_repair", Name: "Appliance Repair", Profession: "Appliance Repair", Price: 79},
}

// Services returns the selectable catalog.
func Services() []models.ServiceOption {
	out := make([]models.ServiceOption, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// ServiceByID looks a catalog entry up by id.
func ServiceByID(id int) (models.ServiceOption, bool) {
	for _, svc := range serviceCatalog {
		if svc.ID == id {
			return svc, true
		}
	}
	return models.ServiceOption{}, false
}
