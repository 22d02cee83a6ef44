package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run is one persisted reconciliation.
type Run struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
	MRLabel       string    `gorm:"column:mr_label;size:512" json:"mr"`
	SMRLabel      string    `gorm:"column:smr_label;size:512" json:"smr"`
	Reference     string    `gorm:"column:reference;size:10" json:"reference"`
	CanProceed    bool      `gorm:"column:can_proceed" json:"can_proceed"`
	FailReasons   string    `gorm:"column:fail_reasons;type:text" json:"-"`
	MRPatch       string    `gorm:"column:mr_patch;size:32" json:"mr_patch"`
	SMRPatch      string    `gorm:"column:smr_patch;size:32" json:"smr_patch"`
	FeatureStatus string    `gorm:"column:feature_status;size:8" json:"feature_status"`
	PackageStatus string    `gorm:"column:package_status;size:8" json:"package_status"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "smr_runs"
}

// BeforeCreate assigns a UUID when none was set.
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// SetFailReasons stores reasons as a JSON array.
func (r *Run) SetFailReasons(reasons []string) error {
	if reasons == nil {
		reasons = []string{}
	}
	data, err := json.Marshal(reasons)
	if err != nil {
		return err
	}
	r.FailReasons = string(data)
	return nil
}

// Reasons decodes the stored fail reasons. Malformed data yields nil.
func (r Run) Reasons() []string {
	var reasons []string
	if err := json.Unmarshal([]byte(r.FailReasons), &reasons); err != nil {
		return nil
	}
	return reasons
}

// MarshalJSON exposes the decoded fail reasons.
func (r Run) MarshalJSON() ([]byte, error) {
	type alias Run
	reasons := r.Reasons()
	if reasons == nil {
		reasons = []string{}
	}
	return json.Marshal(struct {
		alias
		FailReasons []string `json:"fail_reasons"`
	}{alias: alias(r), FailReasons: reasons})
}
