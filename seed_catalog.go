package main

import (
	"database/sql"
	"log"

	_ "github.com/lib/pq"

	"consulting-platform-server/config"
)

type seedSpecialization struct {
	Code          string
	NameAr        string
	NameEn        string
	DescriptionEn string
	Icon          string
	OrderIndex    int
}

type seedConsultationType struct {
	Code                   string
	NameAr                 string
	NameEn                 string
	DescriptionEn          string
	BasePriceSAR           int64 // halalas
	EstimatedDuration      int   // minutes
	SLAHours               int
	RelatedSpecializations string
}

// seedCatalog inserts the default specialization and consultation type
// catalog. Safe to run repeatedly; existing codes are skipped.
func seedCatalog() error {
	db, err := sql.Open("postgres", config.AppConfig.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return err
	}

	specializations := []seedSpecialization{
		{"labor-law", "قانون العمل", "Labor Law", "Saudi labor law, contracts and dispute guidance", "⚖️", 1},
		{"hr-policies", "سياسات الموارد البشرية", "HR Policies", "Policy drafting and internal regulations", "📋", 2},
		{"payroll-wps", "الرواتب وحماية الأجور", "Payroll & WPS", "Payroll structuring and wage protection compliance", "💰", 3},
		{"saudization", "السعودة ونطاقات", "Saudization & Nitaqat", "Nitaqat classification and localization planning", "🇸🇦", 4},
		{"gosi", "التأمينات الاجتماعية", "GOSI", "Social insurance registration and contributions", "🛡️", 5},
		{"recruitment", "الاستقطاب والتوظيف", "Recruitment", "Hiring strategy and visa quotas", "🧑‍💼", 6},
	}

	specInsert := `INSERT INTO specializations (code, name_ar, name_en, description_en, icon, is_active, order_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, true, $6, NOW(), NOW())
		ON CONFLICT (code) DO NOTHING`
	seeded := 0
	for _, s := range specializations {
		res, err := db.Exec(specInsert, s.Code, s.NameAr, s.NameEn, s.DescriptionEn, s.Icon, s.OrderIndex)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			seeded++
		}
	}
	log.Printf("✅ Seeded %d specializations", seeded)

	consultationTypes := []seedConsultationType{
		{"quick-question", "استشارة سريعة", "Quick Question", "A single written question answered by a specialist", 9900, 30, 24, `["labor-law","hr-policies","gosi"]`},
		{"contract-review", "مراجعة عقد", "Contract Review", "Review of an employment contract against labor law", 29900, 60, 24, `["labor-law"]`},
		{"policy-drafting", "صياغة سياسة", "Policy Drafting", "Drafting of an internal HR policy document", 49900, 120, 48, `["hr-policies"]`},
		{"wps-audit", "تدقيق حماية الأجور", "WPS Audit", "Review of payroll files and wage protection compliance", 39900, 90, 48, `["payroll-wps","gosi"]`},
		{"nitaqat-planning", "تخطيط نطاقات", "Nitaqat Planning", "Saudization classification review and hiring plan", 59900, 120, 72, `["saudization","recruitment"]`},
	}

	typeInsert := `INSERT INTO consultation_types (code, name_ar, name_en, description_en, base_price_sar, estimated_duration, sla_hours, related_specializations, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true, NOW(), NOW())
		ON CONFLICT (code) DO NOTHING`
	seeded = 0
	for _, ct := range consultationTypes {
		res, err := db.Exec(typeInsert, ct.Code, ct.NameAr, ct.NameEn, ct.DescriptionEn,
			ct.BasePriceSAR, ct.EstimatedDuration, ct.SLAHours, ct.RelatedSpecializations)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			seeded++
		}
	}
	log.Printf("✅ Seeded %d consultation types", seeded)

	return nil
}
