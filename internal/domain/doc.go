// Package domain contains the core business entities, value objects, and
// domain logic of the application: users and their verification codes, and
// the vocabulary catalog. It is independent of any specific infrastructure or
// delivery mechanism.
package domain
