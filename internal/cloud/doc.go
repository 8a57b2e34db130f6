// Package cloud implements the particle-cloud simulation engine: a fixed
// population of atoms coupled by simplified gravity and magnetism,
// advanced frame by frame and kept depth-sorted for the renderers.
//
// The cloud is the sole owner of its atoms. Renderers consume the
// [Cloud.Positions] snapshot and never see velocity, mass or charge.
package cloud
