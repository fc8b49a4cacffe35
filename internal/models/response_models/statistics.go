package response_models

// StatBucket is one row of a group-by-count breakdown, ordered by descending
// count in every report.
type StatBucket struct {
	Name  string `json:"name" gorm:"column:name"`
	Count int64  `json:"count" gorm:"column:count"`
}

type StatisticsReport struct {
	TotalSubmissions int64        `json:"totalSubmissions"`
	Today            int64        `json:"today"`
	ThisMonth        int64        `json:"thisMonth"`
	ServiceStats     []StatBucket `json:"serviceStats"`
	PermissionStats  []StatBucket `json:"permissionStats"`
}
