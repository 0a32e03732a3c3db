package validate

// SchemaJSON is the JSON Schema the generative extractor is asked to
// produce and the shape every candidate is checked against before any
// semantic validation. It mirrors model.ApplicabilityRecord.
const SchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["ad_number", "models"],
  "properties": {
    "ad_number": {"type": "string", "minLength": 1},
    "issuing_authority": {"type": ["string", "null"]},
    "effective_date": {"type": ["string", "null"]},
    "revision": {"type": ["string", "null"]},
    "supersedes": {"type": ["array", "null"], "items": {"type": "string"}},
    "models": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "msn_constraints": {
      "type": ["array", "null"],
      "items": {"$ref": "#/$defs/msn_constraint"}
    },
    "modification_constraints": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["modification_id"],
        "properties": {
          "modification_id": {"type": "string", "minLength": 1},
          "embodied": {"type": ["boolean", "null"]},
          "excluded": {"type": "boolean"}
        }
      }
    },
    "sb_constraints": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["sb_identifier"],
        "properties": {
          "sb_identifier": {"type": "string", "minLength": 1},
          "min_revision": {"type": ["integer", "null"]},
          "incorporated": {"type": ["boolean", "null"]},
          "excluded": {"type": "boolean"}
        }
      }
    },
    "groups": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["group_id"],
        "properties": {
          "group_id": {"type": "string", "minLength": 1},
          "models": {"type": ["array", "null"], "items": {"type": "string"}},
          "msn_constraints": {
            "type": ["array", "null"],
            "items": {"$ref": "#/$defs/msn_constraint"}
          },
          "description": {"type": ["string", "null"]}
        }
      }
    },
    "requirements": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["paragraph_id", "action_type", "description"],
        "properties": {
          "paragraph_id": {"type": "string"},
          "action_type": {
            "type": "string",
            "enum": [
              "inspection",
              "modification",
              "corrective_action",
              "terminating_action",
              "prohibition",
              "clarification"
            ]
          },
          "description": {"type": "string"},
          "applies_to_groups": {"type": ["array", "null"], "items": {"type": "string"}},
          "compliance_times": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "properties": {
                "value": {"type": ["integer", "null"]},
                "unit": {
                  "type": ["string", "null"],
                  "enum": [
                    "flight_hours",
                    "flight_cycles",
                    "days",
                    "months",
                    "years",
                    "calendar_date",
                    null
                  ]
                },
                "reference": {"type": ["string", "null"]},
                "calendar_date": {"type": ["string", "null"]},
                "is_interval": {"type": "boolean"}
              }
            }
          },
          "reference_documents": {"type": ["array", "null"], "items": {"type": "string"}}
        }
      }
    }
  },
  "$defs": {
    "msn_constraint": {
      "type": "object",
      "properties": {
        "all": {"type": ["boolean", "null"]},
        "range": {
          "type": ["object", "null"],
          "properties": {
            "start": {"type": ["integer", "null"]},
            "end": {"type": ["integer", "null"]},
            "inclusive_start": {"type": "boolean"},
            "inclusive_end": {"type": "boolean"}
          }
        },
        "specific_msns": {"type": ["array", "null"], "items": {"type": "integer"}},
        "excluded": {"type": "boolean"}
      }
    }
  }
}`
