package model

import "time"

// Scenario is a named, saved set of calculator inputs.
type Scenario struct {
	ID        string           `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	Inputs    CalculatorInputs `json:"inputs" yaml:"inputs"`
	CreatedAt time.Time        `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" yaml:"updated_at"`
}
