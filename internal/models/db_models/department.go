package db_models

type Department struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:120" json:"name"`
}
