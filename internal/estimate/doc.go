// Package estimate implements the two diffusion-coefficient estimators:
// grid-search maximum likelihood with a profile-likelihood confidence
// band, and the Crocker-Grier-Weeks mean-squared-displacement method.
package estimate
