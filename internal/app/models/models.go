// Package models contains the persistence models for users, professors,
// students and courses. Course membership is stored denormalized on both
// sides of each relationship.
package models
