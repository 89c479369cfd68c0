package engine

import "github.com/darmiel/gatecheck/internal/core"

// DefaultPolicy returns the built-in keyword table.
// Every call returns a fresh copy.
//
// Phrases are matched as plain substrings, so short ones over-trigger:
// "prod" fires inside "product" and "db" inside "feedback".
func DefaultPolicy() core.Policy {
	return core.Policy{
		// money / commitments
		"financial": {
			"refund", "issue refund", "credit", "payment", "charge", "billing",
			"invoice", "payout", "compensation", "price", "pricing",
			"commit funds", "financial commitment",
		},

		// production / infra / change control
		"production_environment": {
			"production", "prod", "live environment", "live system",
			"deploy to production", "push to production", "release to production",
			"rollout", "hotfix", "production server",
		},
		"system_modification": {
			"deploy", "deployment", "push code", "release", "restart", "reboot",
			"modify configuration", "change configuration", "update config",
			"infrastructure", "server", "database", "db", "schema",
			"delete and recreate", "recreate environment", "provision",
			"terminate instance", "scale cluster",
		},
		"destructive_action": {
			"delete", "drop", "wipe", "destroy", "remove", "truncate",
			"purge", "erase", "reset", "format",
		},

		// access control
		"permissions": {
			"permission", "permissions", "role", "roles", "admin", "administrator",
			"grant access", "revoke access", "elevate", "privilege", "privileges",
			"modify user permissions", "change user permissions",
		},

		// data leaving the system
		"data_export": {
			"export", "download", "exfiltrate", "extract", "dump",
			"backup", "copy data", "send data", "share data",
		},
		"pii_sensitive": {
			"customer data", "employee records", "personal data", "pii",
			"ssn", "social security", "medical", "health", "bank account",
			"credit card", "passport", "driver's license",
		},

		// external comms / brand
		"external_communications": {
			"email", "send email", "external email", "mass email",
			"marketing email", "newsletter", "blast", "campaign",
			"post", "publish", "schedule social", "social post",
			"tweet", "linkedin", "facebook",
		},

		// legal / compliance / HR
		"legal": {
			"compliance", "legal", "regulation", "regulatory",
			"policy guarantee", "certify", "contract", "nda", "terms",
		},
		"hr": {
			"hire", "fire", "discipline", "terminate", "promotion",
			"salary", "pay raise", "layoff",
		},

		// explicit approvals; kept narrow
		"authority": {
			"approve", "approval", "authorize", "authorization",
			"deny", "confirm", "sign off", "change control", "engineering approval",
		},
	}
}
