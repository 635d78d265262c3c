// Package prediction defines the contract between the service and the
// pre-trained battery maintenance models. The concrete model loading and
// inference lives in infra/prediction; everything here is inference-agnostic.
package prediction
