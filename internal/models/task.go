package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskDifficulty string

const (
	DifficultyEasy   TaskDifficulty = "Easy"
	DifficultyMedium TaskDifficulty = "Medium"
	DifficultyHard   TaskDifficulty = "Hard"
)

type TaskCategory string

const (
	CategoryProgramming  TaskCategory = "Programming"
	CategoryAlgorithm    TaskCategory = "Algorithm"
	CategoryDatabase     TaskCategory = "Database"
	CategoryWebDev       TaskCategory = "Web Development"
	CategorySystemDesign TaskCategory = "System Design"
	CategoryOther        TaskCategory = "Other"
)

// Task is a coding challenge in the admin catalog. Deleting a task removes
// all of its assignments.
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Difficulty  TaskDifficulty `gorm:"type:varchar(20);not null;default:'Medium'" json:"difficulty"`
	Category    TaskCategory   `gorm:"type:varchar(50);not null;default:'Programming'" json:"category"`

	TimeLimit int `gorm:"not null;default:60" json:"time_limit"` // minutes
	MaxScore  int `gorm:"not null;default:100" json:"max_score"`

	ProblemStatement string       `gorm:"type:text" json:"problem_statement"`
	Constraints      string       `gorm:"type:text" json:"constraints"`
	Examples         ExampleList  `gorm:"type:text" json:"examples"`
	TestCases        TestCaseList `gorm:"type:text" json:"test_cases"`
	Tags             StringList   `gorm:"type:text" json:"tags"`

	CreatedBy string `gorm:"type:varchar(100)" json:"created_by"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}
