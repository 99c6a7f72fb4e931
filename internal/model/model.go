// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Resource kinds as they appear in API payloads.
const (
	KindSubnet = "subnet"
	KindTask   = "task"
)

// Subnet states.
const (
	SubnetStateCreating = "CREATING"
	SubnetStateReady    = "READY"
	SubnetStateDeleted  = "DELETED"
)

// Subnet is a network segment backed by one or more port groups.
type Subnet struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	State       string    `json:"state"`
	PortGroups  []string  `json:"portGroups"`
	IsDefault   bool      `json:"isDefault"`
	SelfLink    string    `json:"selfLink,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Seq is the insertion sequence used as keyset cursor; never serialized.
	Seq int64 `json:"-"`
}

// SubnetCreateSpec is the client payload for creating a subnet.
type SubnetCreateSpec struct {
	Name        string   `json:"name" validate:"required,resource_name"`
	Description string   `json:"description,omitempty" validate:"max=255"`
	PortGroups  []string `json:"portGroups" validate:"required,min=1,dive,required"`
}

// Task operations.
const (
	OperationCreateSubnet = "CREATE_SUBNET"
	OperationDeleteSubnet = "DELETE_SUBNET"
)

// Task states.
const (
	TaskStateQueued    = "QUEUED"
	TaskStateStarted   = "STARTED"
	TaskStateCompleted = "COMPLETED"
	TaskStateError     = "ERROR"
)

// Entity references the resource a task operates on.
type Entity struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	SelfLink string `json:"selfLink,omitempty"`
}

// Task tracks an asynchronous operation on a resource.
type Task struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Entity      Entity     `json:"entity"`
	State       string     `json:"state"`
	Operation   string     `json:"operation"`
	StartedTime time.Time  `json:"startedTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	SelfLink    string     `json:"selfLink,omitempty"`
}

// ResourceList is one page of a listing. An empty NextPageLink marks the last page.
type ResourceList[T any] struct {
	Items            []T    `json:"items"`
	NextPageLink     string `json:"nextPageLink,omitempty"`
	PreviousPageLink string `json:"previousPageLink,omitempty"`
}
