// Package business provides the Business aggregate: the restaurant or shop
// that receives orders, owns their pricing config and collects ratings.
package business
