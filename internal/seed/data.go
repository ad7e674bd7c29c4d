package seed

import (
	"time"

	"github.com/portfolio-space/core/internal/models"
	"github.com/portfolio-space/core/internal/modules/content/award"
	"github.com/portfolio-space/core/internal/modules/content/blogpost"
	"github.com/portfolio-space/core/internal/modules/content/project"
	"github.com/portfolio-space/core/internal/modules/content/testimonial"
	"github.com/portfolio-space/core/internal/modules/system/core/settings"
)

func str(s string) *string { return &s }

func date(y int, m time.Month, d int) models.Date { return models.NewDate(y, m, d) }

func ptrDate(d models.Date) *models.Date { return &d }

var sampleSiteSettings = settings.SiteSettingsDTO{
	SiteTitle:       str("Dr. Amara Okello - Agronomy & Food Systems"),
	SiteDescription: str("Portfolio of Dr. Amara Okello, head of seed quality assurance and an advocate for climate-resilient farming."),
	ContactEmail:    str("hello@amaraokello.example"),
	ContactPhone:    str("+256 700 123 456"),
	Address:         str("Plot 12, Research Lane, Entebbe"),
	SocialLinkedIn:  str("https://linkedin.com/in/amaraokello"),
	SocialTwitter:   str("https://twitter.com/amaraokello"),
	SocialFacebook:  str("https://facebook.com/amaraokello"),
}

var sampleBio = settings.BioDTO{
	Name:         str("Dr. Amara Okello"),
	Title:        str("Head of Seed Quality Assurance"),
	Organization: str("National Seed Certification Service"),
	Bio: str(`Dr. Amara Okello has spent more than twenty years working on seed systems, crop inspection and extension services.

She leads the national seed quality assurance team, which inspects multiplication fields, runs laboratory germination tests and issues certificates for seed sold to farmers.

Her research covers drought-tolerant varieties and low-cost storage for smallholders. She holds a PhD in Plant Breeding and regularly advises regional bodies on harmonised seed standards.`),
	Email:    str("hello@amaraokello.example"),
	Phone:    str("+256 700 123 456"),
	LinkedIn: str("https://linkedin.com/in/amaraokello"),
	Twitter:  str("https://twitter.com/amaraokello"),
}

var sampleProjects = []project.CreateProjectDTO{
	{
		Title:               "Seed Certification Modernisation",
		Description:         "Digitising field inspections and laboratory results for certified seed.",
		DetailedDescription: "Inspectors record field visits on tablets and results flow straight into the certificate register. Turnaround from sampling to certificate dropped from six weeks to ten days.",
		StartDate:           date(2021, 2, 1),
		Status:              models.ProjectOngoing,
		Featured:            true,
	},
	{
		Title:               "Drought-Tolerant Maize Trials",
		Description:         "Multi-site trials of early-maturing maize lines across three agro-ecological zones.",
		DetailedDescription: "Twelve candidate lines were grown on forty farmer-managed plots. Two lines were released after consistently beating the local check under moisture stress.",
		StartDate:           date(2019, 9, 1),
		EndDate:             ptrDate(date(2023, 3, 31)),
		Status:              models.ProjectCompleted,
		Featured:            true,
	},
	{
		Title:               "Young Growers Mentorship",
		Description:         "Pairing school leavers with experienced seed producers for a full season.",
		DetailedDescription: "Mentees learn isolation distances, roguing and record keeping, then apply for their own seed grower registration.",
		StartDate:           date(2024, 1, 15),
		Status:              models.ProjectOngoing,
		Featured:            true,
	},
	{
		Title:               "Regional Seed Standards Harmonisation",
		Description:         "Aligning certification classes and tolerances with neighbouring countries.",
		DetailedDescription: "A shared catalogue lets varieties released in one country be sold across the region after a single round of testing.",
		StartDate:           date(2025, 6, 1),
		Status:              models.ProjectPlanned,
	},
}

var sampleAwards = []award.CreateAwardDTO{
	{
		Name:         "Distinguished Public Service Medal",
		Organization: "Ministry of Public Service",
		Date:         date(2024, 5, 10),
		Description:  "For sustained service to farmers through the national seed certification programme.",
		Category:     "service",
		Featured:     true,
	},
	{
		Name:         "Leadership in Agriculture Award",
		Organization: "Farmers Federation",
		Date:         date(2023, 11, 20),
		Description:  "For leading the reform of field inspection procedures.",
		Category:     "leadership",
		Featured:     true,
	},
	{
		Name:         "Regional Partnership Award",
		Organization: "East African Seed Committee",
		Date:         date(2022, 8, 4),
		Description:  "For work on harmonised seed standards across borders.",
		Category:     "international",
		Featured:     true,
	},
	{
		Name:         "Best Applied Research Paper",
		Organization: "Crop Science Society",
		Date:         date(2021, 10, 1),
		Description:  "For the multi-site evaluation of early-maturing maize under drought.",
		Category:     "research",
	},
}

var samplePosts = []blogpost.CreatePostDTO{
	{
		Title:   "Why Certified Seed Matters",
		Slug:    "why-certified-seed-matters",
		Excerpt: "Certified seed is the cheapest yield insurance a smallholder can buy.",
		Body: `Every season farmers gamble on the seed they plant. Saved grain often carries disease and mixed varieties.

Certification checks **purity**, **germination** and **health** before seed reaches the market. The price difference is small compared with the yield it protects.

Our inspectors now visit every multiplication field at least twice a season, and the results are public.`,
		Author:    "Dr. Amara Okello",
		Published: true,
		Featured:  true,
		Tags:      []string{"seed systems", "certification", "smallholders"},
	},
	{
		Title:   "Lessons From Four Seasons of Drought Trials",
		Slug:    "lessons-from-drought-trials",
		Excerpt: "What forty farmer-managed plots taught us about breeding for dry spells.",
		Body: `Running trials on farmers' fields is messy, and that is the point. Station results rarely survive contact with real soils.

Three lessons stood out:

1. Early maturity matters more than peak yield.
2. Farmers judge a variety by how it stores, not only by how it grows.
3. Good records beat big plots.`,
		Author:    "Dr. Amara Okello",
		Published: true,
		Featured:  true,
		Tags:      []string{"research", "climate", "maize"},
	},
	{
		Title:     "Notes on Mentoring Young Seed Growers",
		Slug:      "mentoring-young-seed-growers",
		Excerpt:   "A season with first-time growers, and what we will change next year.",
		Body:      "Draft notes from the first mentorship season. Not ready for publishing yet.",
		Author:    "Dr. Amara Okello",
		Published: false,
		Tags:      []string{"youth", "mentorship"},
	},
}

var sampleTestimonials = []testimonial.CreateTestimonialDTO{
	{
		Author:       "Grace Namusoke",
		Position:     "Chairperson",
		Organization: "Seed Growers Association",
		Quote:        "Inspections used to be a mystery. Now every grower knows what is checked and when.",
		Featured:     true,
	},
	{
		Author:       "Dr. Peter Wanyama",
		Position:     "Senior Plant Breeder",
		Organization: "Agricultural Research Institute",
		Quote:        "Amara brought farmers into the trial process and the varieties are better for it.",
		Featured:     true,
	},
	{
		Author:       "Esther Achieng",
		Position:     "Programme Officer",
		Organization: "Regional Seed Committee",
		Quote:        "Her patience with the details made regional harmonisation possible.",
		Featured:     true,
	},
	{
		Author:       "Joseph Ssali",
		Position:     "Mentee",
		Organization: "Young Growers Mentorship",
		Quote:        "I registered as a seed grower after one season. I did not think that was possible.",
	},
}
