// Package testsupport holds helpers shared by package tests: a config
// builder, title fixtures and an in-process Redis.
package testsupport
