// Package media holds the source video properties shared by the probe
// adapter, the frame strategies, and the scheduler.
package media
