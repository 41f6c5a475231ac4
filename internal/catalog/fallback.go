package catalog

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

func sampleDate(day int) time.Time {
	return time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, day)
}

func sampleCategory(name string) *entity.Category {
	// Only the display name is set: the sample data matches categories
	// through the derived slug.
	return &entity.Category{Name: name, IsActive: true}
}

// FallbackProducts returns a fresh copy of the static sample catalog served
// when the catalog source is unavailable.
func FallbackProducts() []entity.Product {
	return []entity.Product{
		{
			ID: "2001", Slug: "full-stack-web-development-bootcamp", Name: "Full-Stack Web Development Bootcamp",
			ShortDescription: "From HTML to deployed React and Node apps.",
			Description:      "A project-based bootcamp covering frontend, backend, databases and deployment.",
			Price:            "399.00", ComparePrice: "599.00",
			Category: sampleCategory("Courses"), Images: []string{"/images/products/web-bootcamp.jpg"},
			Stock: 999, Featured: true, Tags: []string{"web", "javascript", "react", "node"},
			Metadata:      map[string]interface{}{entity.MetaInstantDownload: false},
			AverageRating: "4.8", TotalReviews: 342, CreatedAt: sampleDate(0), UpdatedAt: sampleDate(0),
		},
		{
			ID: "2002", Slug: "ethical-hacking-penetration-testing", Name: "Ethical Hacking & Penetration Testing",
			ShortDescription: "Hands-on offensive security labs.",
			Description:      "Reconnaissance, exploitation and reporting with real lab targets.",
			Price:            "449.00",
			Category:         sampleCategory("Cybersecurity"), Images: []string{"/images/products/ethical-hacking.jpg"},
			Stock: 999, Featured: true, Tags: []string{"security", "pentest", "kali"},
			Metadata:      map[string]interface{}{entity.MetaInstantDownload: true, entity.MetaFileType: "ZIP"},
			AverageRating: "4.9", TotalReviews: 518, CreatedAt: sampleDate(6), UpdatedAt: sampleDate(6),
		},
		{
			ID: "2003", Slug: "cloud-architecture-masterclass", Name: "Cloud Architecture Masterclass",
			ShortDescription: "Design resilient multi-region systems.",
			Description:      "Reference architectures for AWS, GCP and Azure with cost and reliability trade-offs.",
			Price:            "499.00",
			Category:         sampleCategory("Cloud Computing"), Images: []string{"/images/products/cloud-architecture.jpg"},
			Stock: 999, Tags: []string{"cloud", "aws", "architecture"},
			AverageRating: "4.7", TotalReviews: 211, CreatedAt: sampleDate(12), UpdatedAt: sampleDate(12),
		},
		{
			ID: "2004", Slug: "ui-ux-design-template-pack", Name: "UI/UX Design Template Pack",
			ShortDescription: "200+ editable screens and components.",
			Description:      "A Figma kit with dashboards, landing pages and mobile flows.",
			Price:            "259.00", ComparePrice: "329.00",
			Category: sampleCategory("Design"), Images: []string{"/images/products/uiux-pack.jpg"},
			Stock: 999, Tags: []string{"figma", "ui", "templates"},
			Metadata:      map[string]interface{}{entity.MetaInstantDownload: true, entity.MetaFileType: "FIG", entity.MetaLicense: "commercial"},
			AverageRating: "4.6", TotalReviews: 127, CreatedAt: sampleDate(18), UpdatedAt: sampleDate(18),
		},
		{
			ID: "2005", Slug: "enterprise-firewall-config-toolkit", Name: "Enterprise Firewall Config Toolkit",
			ShortDescription: "Hardened rule sets and audit scripts.",
			Description:      "Baseline configurations and compliance checks for common enterprise firewalls.",
			Price:            "529.00",
			Category:         sampleCategory("Cybersecurity"), Images: []string{"/images/products/firewall-toolkit.jpg"},
			Stock: 999, Tags: []string{"security", "firewall", "compliance"},
			Metadata:      map[string]interface{}{entity.MetaLicense: "enterprise"},
			AverageRating: "4.7", TotalReviews: 89, CreatedAt: sampleDate(24), UpdatedAt: sampleDate(24),
		},
		{
			ID: "2006", Slug: "data-science-with-python", Name: "Data Science with Python",
			ShortDescription: "Pandas, scikit-learn and visualisation.",
			Description:      "Analyse real datasets and build predictive models end to end.",
			Price:            "379.00",
			Category:         sampleCategory("Data Science"), Images: []string{"/images/products/data-science.jpg"},
			Stock: 999, Featured: true, Tags: []string{"python", "ml", "pandas"},
			AverageRating: "4.8", TotalReviews: 403, CreatedAt: sampleDate(30), UpdatedAt: sampleDate(30),
		},
		{
			ID: "2007", Slug: "algorithmic-trading-strategies", Name: "Algorithmic Trading Strategies",
			ShortDescription: "Backtested strategies with source code.",
			Description:      "Momentum, mean-reversion and market-making strategies with a backtesting harness.",
			Price:            "549.00",
			Category:         sampleCategory("Fintech"), Images: []string{"/images/products/algo-trading.jpg"},
			Stock: 999, Tags: []string{"trading", "finance", "python"},
			Metadata:      map[string]interface{}{entity.MetaInstantDownload: true},
			AverageRating: "4.6", TotalReviews: 76, CreatedAt: sampleDate(36), UpdatedAt: sampleDate(36),
		},
		{
			ID: "2008", Slug: "mobile-app-development-with-flutter", Name: "Mobile App Development with Flutter",
			ShortDescription: "Ship iOS and Android apps from one codebase.",
			Description:      "State management, animations and store publishing with Flutter and Dart.",
			Price:            "329.00",
			Category:         sampleCategory("Courses"), Images: []string{"/images/products/flutter.jpg"},
			Stock: 999, Tags: []string{"mobile", "flutter", "dart"},
			Metadata:      map[string]interface{}{entity.MetaInstantDownload: false},
			AverageRating: "4.7", TotalReviews: 265, CreatedAt: sampleDate(42), UpdatedAt: sampleDate(42),
		},
		{
			ID: "2009", Slug: "financial-modeling-excel-suite", Name: "Financial Modeling Excel Suite",
			ShortDescription: "Three-statement models and valuation templates.",
			Description:      "DCF, LBO and budgeting workbooks ready for startups and analysts.",
			Price:            "289.00",
			Category:         sampleCategory("Business Tools"), Images: []string{"/images/products/excel-suite.jpg"},
			Stock: 999, Tags: []string{"excel", "finance", "valuation"},
			Metadata:      map[string]interface{}{entity.MetaFileType: "XLSX", entity.MetaLicense: "single-user"},
			AverageRating: "4.6", TotalReviews: 58, CreatedAt: sampleDate(48), UpdatedAt: sampleDate(48),
		},
		{
			ID: "2010", Slug: "devops-ci-cd-pipeline-blueprints", Name: "DevOps CI/CD Pipeline Blueprints",
			ShortDescription: "Production-ready pipelines for containers.",
			Description:      "GitHub Actions, GitLab CI and Kubernetes deployment blueprints.",
			Price:            "319.00",
			Category:         sampleCategory("DevOps"), Images: []string{"/images/products/devops-blueprints.jpg"},
			Stock: 999, Tags: []string{"devops", "kubernetes", "ci"},
			Metadata:      map[string]interface{}{entity.MetaInstantDownload: true, entity.MetaFileType: "YAML"},
			AverageRating: "4.8", TotalReviews: 194, CreatedAt: sampleDate(54), UpdatedAt: sampleDate(54),
		},
	}
}
