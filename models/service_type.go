package models

import "time"

// ServiceCategories is the closed set of bookable service categories.
var ServiceCategories = []string{
	"Home Repair & Maintenance",
	"Cleaning & Housekeeping",
	"Beauty & Wellness",
	"Automotive Services",
	"Personal & Errands",
	"Tutoring & Education",
	"Event Services",
	"Pet Care",
	"Professional Services",
	"Daily Wage Labor",
	"Other",
}

// ServiceSubcategories maps each category to its allowed subcategories.
var ServiceSubcategories = map[string][]string{
	"Home Repair & Maintenance": {
		"Plumbing", "Electrical", "Carpentry", "Painting", "Appliance Repair",
		"HVAC Repair", "Handyman Services", "Roofing", "Masonry", "Pest Control",
		"Gardening & Landscaping", "Waterproofing", "Home Security Systems",
		"Furniture Assembly", "Smart Home Device Setup",
	},
	"Cleaning & Housekeeping": {
		"Home Cleaning (Deep)", "Home Cleaning (Standard)", "Commercial Cleaning",
		"Sofa & Carpet Cleaning", "Bathroom Cleaning", "Kitchen Cleaning",
		"Window Cleaning", "Pressure Washing", "Move-in/Move-out Cleaning",
		"Laundry & Ironing", "Maid Service",
	},
	"Beauty & Wellness": {
		"Haircut & Styling (Men)", "Haircut & Styling (Women)", "Massage Therapy",
		"Facial & Skincare", "Manicure & Pedicure", "Makeup Artist",
		"Yoga Instructor", "Personal Trainer",
	},
	"Automotive Services": {
		"Car Wash & Detailing", "Car Repair", "Bike Repair", "Tyre Replacement",
		"Battery Replacement", "Roadside Assistance",
	},
	"Personal & Errands": {
		"Grocery Shopping", "Courier & Delivery", "Queueing Services",
		"Personal Assistant", "Elderly Care",
	},
	"Tutoring & Education": {
		"Academic Tutoring", "Music Lessons", "Language Lessons",
		"Computer Training", "Exam Preparation",
	},
	"Event Services": {
		"Catering", "Photography", "Videography", "Decoration", "DJ & Music",
		"Event Planning",
	},
	"Pet Care": {
		"Dog Walking", "Pet Grooming", "Pet Sitting", "Veterinary Home Visit",
	},
	"Professional Services": {
		"Accounting", "Legal Consultation", "IT Support", "Interior Design",
		"Tax Filing",
	},
	"Daily Wage Labor": {
		"Construction Helper", "Loading & Unloading", "Farm Labor",
		"General Labor",
	},
	"Other": {
		"Custom Request",
	},
}

// ValidService reports whether the category/subcategory pair belongs to the
// closed taxonomy.
func ValidService(category, subcategory string) bool {
	subs, ok := ServiceSubcategories[category]
	if !ok {
		return false
	}
	for _, s := range subs {
		if s == subcategory {
			return true
		}
	}
	return false
}

// ServiceDuration returns the expected duration of a service visit. Every
// subcategory currently books out one hour; pricing units do not change
// the slot width.
func ServiceDuration(category, subcategory string) time.Duration {
	return time.Hour
}

// CommissionRate is the platform's cut of a booking total.
const CommissionRate = 0.10
