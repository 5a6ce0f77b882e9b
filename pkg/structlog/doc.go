// Package structlog provides the core model for structured logging: records,
// key-value lists, serializers and drains.
//
// A Logger builds a Record for every call and hands it, together with the
// logger's own key-value context, to a Drain. Drains decide what to do with
// the record: format it (see the jsondrain and termdrain packages), ship it
// somewhere (kafkadrain, redisdrain), buffer it (asyncdrain) or combine other
// drains (Tee, LevelFilter, the topology package).
//
// Values attached to a record are not rendered eagerly. A drain serializes
// them through the Serializer interface, so the same record can be encoded
// as JSON by one drain and as a colored terminal line by another. Lazy
// values (FnValue) are resolved at serialization time and see the record
// they are being serialized for, including its context.
package structlog
