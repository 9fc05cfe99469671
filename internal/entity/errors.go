package entity

import "errors"

var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrOfferConfigNotFound = errors.New("offer config not found")
)
