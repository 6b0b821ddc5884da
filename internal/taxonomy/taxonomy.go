// Package taxonomy holds the curated category and tag vocabulary offered in
// selection UI. It is process-local reference data: there is no persistence
// and no runtime mutation. Stored projects are not required to stay inside
// this vocabulary; IsKnownCategory/IsKnownTag exist for deployments that
// want to enforce it at the edge.
package taxonomy

// CategoryGroup is one labelled cluster of category options.
type CategoryGroup struct {
	Label   string   `json:"label"`
	Icon    string   `json:"icon"`
	Options []string `json:"options"`
}

// TagSubgroup is one axis inside a tag group (e.g. pricing).
type TagSubgroup struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// TagGroup clusters tag subgroups for presentation.
type TagGroup struct {
	Label     string        `json:"label"`
	Icon      string        `json:"icon"`
	Subgroups []TagSubgroup `json:"subgroups"`
}

var categoryGroups = []CategoryGroup{
	{
		Label: "Core Business",
		Icon:  "💼",
		Options: []string{
			"Sales Management",
			"CRM",
			"Project Management",
			"Task Management",
			"Schedule Management",
			"Inventory Management",
			"Accounting",
			"HR & Attendance",
			"Invoicing & Quotes",
		},
	},
	{
		Label: "Marketing & Communication",
		Icon:  "📢",
		Options: []string{
			"Marketing Support",
			"Social Media Management",
			"Email Campaigns",
			"Surveys & Forms",
			"Chat & Messaging",
		},
	},
	{
		Label: "Content Creation",
		Icon:  "🎨",
		Options: []string{
			"Writing & Editing",
			"Design & Image Editing",
			"Video Editing",
			"Presentations",
			"Website Building",
		},
	},
	{
		Label: "Data & Analytics",
		Icon:  "📊",
		Options: []string{
			"Data Analysis & Visualization",
			"Reporting",
			"Dashboards",
			"Calculators & Simulations",
			"File Conversion",
		},
	},
	{
		Label: "Learning & Education",
		Icon:  "📚",
		Options: []string{
			"E-Learning",
			"Quiz & Test Builders",
			"Learning Management",
			"Document Sharing",
		},
	},
	{
		Label: "Other",
		Icon:  "🔧",
		Options: []string{
			"Automation Tools",
			"API Integrations",
			"AI-Powered Tools",
			"Security & Auth",
			"Other Utilities",
		},
	},
}

var tagGroups = []TagGroup{
	{
		Label: "Usage Type",
		Icon:  "🏷️",
		Subgroups: []TagSubgroup{
			{Label: "Pricing", Options: []string{"Free", "Paid", "Freemium"}},
			{Label: "Team Scale", Options: []string{"Personal", "Teams", "Enterprise"}},
			{Label: "Access", Options: []string{
				"Browser-Based", "No Account Needed", "Mobile-Friendly",
				"No Install", "PWA", "Offline Support",
			}},
		},
	},
	{
		Label: "Industry & Use Case",
		Icon:  "🏢",
		Subgroups: []TagSubgroup{
			{Label: "Industry", Options: []string{
				"Retail & E-Commerce", "Real Estate", "Restaurants",
				"Healthcare", "Education", "Manufacturing",
				"Professional Services", "Construction", "Beauty & Salon",
				"Logistics", "IT & Web", "Advertising & Marketing",
				"Finance & Insurance", "Staffing",
			}},
			{Label: "Purpose", Options: []string{
				"Project Management", "Task Management", "CRM",
				"Inventory Management", "Invoicing", "Attendance",
				"Recruiting", "Event Management", "Customer Support",
				"Productivity", "Data Management", "Documentation",
				"Cost Reduction", "Social Media Management",
				"Email Campaigns", "Analytics & Reporting",
				"Beginner-Friendly", "Multilingual",
			}},
		},
	},
}

var aiTools = []string{
	"Gemini", "ChatGPT", "Cursor", "Claude", "Bolt", "V0", "Copilot", "Perplexity", "Other",
}

var (
	knownCategories = buildCategoryIndex()
	knownTags       = buildTagIndex()
)

func buildCategoryIndex() map[string]struct{} {
	idx := make(map[string]struct{})
	for _, g := range categoryGroups {
		for _, opt := range g.Options {
			idx[opt] = struct{}{}
		}
	}
	return idx
}

func buildTagIndex() map[string]struct{} {
	idx := make(map[string]struct{})
	for _, g := range tagGroups {
		for _, sg := range g.Subgroups {
			for _, opt := range sg.Options {
				idx[opt] = struct{}{}
			}
		}
	}
	return idx
}

// CategoryGroups returns the grouped category vocabulary.
func CategoryGroups() []CategoryGroup {
	return categoryGroups
}

// TagGroups returns the grouped tag vocabulary.
func TagGroups() []TagGroup {
	return tagGroups
}

// AITools returns the AI tool options offered during project submission.
func AITools() []string {
	return aiTools
}

// IsKnownCategory reports whether cat is part of the curated vocabulary.
func IsKnownCategory(cat string) bool {
	_, ok := knownCategories[cat]
	return ok
}

// IsKnownTag reports whether tag is part of the curated vocabulary.
func IsKnownTag(tag string) bool {
	_, ok := knownTags[tag]
	return ok
}
