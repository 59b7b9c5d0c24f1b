// Package webgpu provides embedded WGSL compute shaders for image operations.
package webgpu

// WGSL compute shaders for the image primitives.
// Using string constants instead of embed for simplicity.
//
// All kernels address planar (C, H, W) float32 buffers and are dispatched
// over the flat element count of the output. Border modes are encoded as
// 0 constant, 1 reflect, 2 replicate, 3 circular; interpolation as
// 0 nearest, 1 bilinear, matching the Go enums.

// workgroupSize is the default number of threads per workgroup.
const workgroupSize = 256

// cropShader copies a height×width window at (top, left) from every channel.
const cropShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
    out_h: u32,
    out_w: u32,
    top: u32,
    left: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.out_h * params.out_w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = rem / params.out_w;
    let x = rem % params.out_w;
    result[idx] = input[ch * params.h * params.w + (params.top + y) * params.w + (params.left + x)];
}
`

// flipHShader mirrors every channel plane left to right.
const flipHShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.h * params.w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = rem / params.w;
    let x = rem % params.w;
    result[idx] = input[ch * plane + y * params.w + (params.w - 1u - x)];
}
`

// flipVShader mirrors every channel plane top to bottom.
const flipVShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.h * params.w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = rem / params.w;
    let x = rem % params.w;
    result[idx] = input[ch * plane + (params.h - 1u - y) * params.w + x];
}
`

// rot90Shader rotates every channel plane counter-clockwise by k quarter
// turns (k in 1..3; k = 0 never reaches the GPU).
const rot90Shader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
    out_h: u32,
    out_w: u32,
    k: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.out_h * params.out_w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = rem / params.out_w;
    let x = rem % params.out_w;

    var sy: u32;
    var sx: u32;
    if (params.k == 1u) {
        sy = x;
        sx = params.w - 1u - y;
    } else if (params.k == 2u) {
        sy = params.h - 1u - y;
        sx = params.w - 1u - x;
    } else {
        sy = params.h - 1u - x;
        sx = y;
    }
    result[idx] = input[ch * params.h * params.w + sy * params.w + sx];
}
`

// transposeShader swaps the two spatial axes of every channel plane.
const transposeShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.h * params.w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = rem / params.h;
    let x = rem % params.h;
    result[idx] = input[ch * plane + x * params.w + y];
}
`

// padShader grows every channel plane, resolving out-of-bounds samples with
// the border mode.
const padShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
    out_h: u32,
    out_w: u32,
    top: u32,
    left: u32,
    mode: u32,
    value: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

fn border_index(i: i32, n: i32, mode: u32) -> i32 {
    if (i >= 0 && i < n) {
        return i;
    }
    if (mode == 0u) {
        return -1;
    }
    if (mode == 2u) {
        return clamp(i, 0, n - 1);
    }
    if (mode == 3u) {
        return ((i % n) + n) % n;
    }
    if (n == 1) {
        return 0;
    }
    let period = 2 * (n - 1);
    var j = ((i % period) + period) % period;
    if (j >= n) {
        j = period - j;
    }
    return j;
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.out_h * params.out_w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = rem / params.out_w;
    let x = rem % params.out_w;

    let sy = border_index(i32(y) - i32(params.top), i32(params.h), params.mode);
    let sx = border_index(i32(x) - i32(params.left), i32(params.w), params.mode);
    if (sx < 0 || sy < 0) {
        result[idx] = params.value;
    } else {
        result[idx] = input[ch * params.h * params.w + u32(sy) * params.w + u32(sx)];
    }
}
`

// resizeShader rescales every channel plane with nearest or bilinear
// interpolation, clamping source indices at the edges.
const resizeShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
    out_h: u32,
    out_w: u32,
    interp: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.out_h * params.out_w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = rem / params.out_w;
    let x = rem % params.out_w;

    let base = ch * params.h * params.w;
    let scale_y = f32(params.h) / f32(params.out_h);
    let scale_x = f32(params.w) / f32(params.out_w);

    if (params.interp == 0u) {
        let sy = min(u32(f32(y) * scale_y), params.h - 1u);
        let sx = min(u32(f32(x) * scale_x), params.w - 1u);
        result[idx] = input[base + sy * params.w + sx];
        return;
    }

    let fy = (f32(y) + 0.5) * scale_y - 0.5;
    let fx = (f32(x) + 0.5) * scale_x - 0.5;
    var y0 = i32(floor(fy));
    var x0 = i32(floor(fx));
    let wy = fy - f32(y0);
    let wx = fx - f32(x0);
    let y1 = clamp(y0 + 1, 0, i32(params.h) - 1);
    let x1 = clamp(x0 + 1, 0, i32(params.w) - 1);
    y0 = clamp(y0, 0, i32(params.h) - 1);
    x0 = clamp(x0, 0, i32(params.w) - 1);

    let top = input[base + u32(y0) * params.w + u32(x0)] * (1.0 - wx)
            + input[base + u32(y0) * params.w + u32(x1)] * wx;
    let bot = input[base + u32(y1) * params.w + u32(x0)] * (1.0 - wx)
            + input[base + u32(y1) * params.w + u32(x1)] * wx;
    result[idx] = top * (1.0 - wy) + bot * wy;
}
`

// warpAffineShader samples every destination pixel through an inverse
// affine map given by the two matrix rows (m00 m01 m02; m10 m11 m12).
const warpAffineShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
    interp: u32,
    mode: u32,
    value: f32,
    m00: f32,
    m01: f32,
    m02: f32,
    m10: f32,
    m11: f32,
    m12: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

fn border_index(i: i32, n: i32, mode: u32) -> i32 {
    if (i >= 0 && i < n) {
        return i;
    }
    if (mode == 0u) {
        return -1;
    }
    if (mode == 2u) {
        return clamp(i, 0, n - 1);
    }
    if (mode == 3u) {
        return ((i % n) + n) % n;
    }
    if (n == 1) {
        return 0;
    }
    let period = 2 * (n - 1);
    var j = ((i % period) + period) % period;
    if (j >= n) {
        j = period - j;
    }
    return j;
}

fn sample_at(base: u32, x: i32, y: i32) -> f32 {
    let bx = border_index(x, i32(params.w), params.mode);
    let by = border_index(y, i32(params.h), params.mode);
    if (bx < 0 || by < 0) {
        return params.value;
    }
    return input[base + u32(by) * params.w + u32(bx)];
}

fn sample_interp(base: u32, sx: f32, sy: f32) -> f32 {
    if (params.interp == 0u) {
        return sample_at(base, i32(floor(sx + 0.5)), i32(floor(sy + 0.5)));
    }
    let x0 = i32(floor(sx));
    let y0 = i32(floor(sy));
    let wx = sx - f32(x0);
    let wy = sy - f32(y0);
    let top = sample_at(base, x0, y0) * (1.0 - wx) + sample_at(base, x0 + 1, y0) * wx;
    let bot = sample_at(base, x0, y0 + 1) * (1.0 - wx) + sample_at(base, x0 + 1, y0 + 1) * wx;
    return top * (1.0 - wy) + bot * wy;
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.h * params.w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    let y = f32(rem / params.w);
    let x = f32(rem % params.w);

    let sx = params.m00 * x + params.m01 * y + params.m02;
    let sy = params.m10 * x + params.m11 * y + params.m12;
    result[idx] = sample_interp(ch * plane, sx, sy);
}
`

// remapShader samples every destination pixel from per-pixel fractional
// source coordinates.
const remapShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read> map_x: array<f32>;
@group(0) @binding(2) var<storage, read> map_y: array<f32>;
@group(0) @binding(3) var<storage, read_write> result: array<f32>;

struct Params {
    c: u32,
    h: u32,
    w: u32,
    interp: u32,
    mode: u32,
    value: f32,
}
@group(0) @binding(4) var<uniform> params: Params;

fn border_index(i: i32, n: i32, mode: u32) -> i32 {
    if (i >= 0 && i < n) {
        return i;
    }
    if (mode == 0u) {
        return -1;
    }
    if (mode == 2u) {
        return clamp(i, 0, n - 1);
    }
    if (mode == 3u) {
        return ((i % n) + n) % n;
    }
    if (n == 1) {
        return 0;
    }
    let period = 2 * (n - 1);
    var j = ((i % period) + period) % period;
    if (j >= n) {
        j = period - j;
    }
    return j;
}

fn sample_at(base: u32, x: i32, y: i32) -> f32 {
    let bx = border_index(x, i32(params.w), params.mode);
    let by = border_index(y, i32(params.h), params.mode);
    if (bx < 0 || by < 0) {
        return params.value;
    }
    return input[base + u32(by) * params.w + u32(bx)];
}

fn sample_interp(base: u32, sx: f32, sy: f32) -> f32 {
    if (params.interp == 0u) {
        return sample_at(base, i32(floor(sx + 0.5)), i32(floor(sy + 0.5)));
    }
    let x0 = i32(floor(sx));
    let y0 = i32(floor(sy));
    let wx = sx - f32(x0);
    let wy = sy - f32(y0);
    let top = sample_at(base, x0, y0) * (1.0 - wx) + sample_at(base, x0 + 1, y0) * wx;
    let bot = sample_at(base, x0, y0 + 1) * (1.0 - wx) + sample_at(base, x0 + 1, y0 + 1) * wx;
    return top * (1.0 - wy) + bot * wy;
}

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    let plane = params.h * params.w;
    if (idx >= params.c * plane) {
        return;
    }
    let ch = idx / plane;
    let rem = idx % plane;
    result[idx] = sample_interp(ch * plane, map_x[rem], map_y[rem]);
}
`

// scaleBiasShader computes result = input * scale + bias element-wise.
// One shader covers both scalar multiplication and scalar addition.
const scaleBiasShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    scale: f32,
    bias: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = input[idx] * params.scale + params.bias;
    }
}
`

// clampShader limits every element to [lo, hi].
const clampShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    lo: f32,
    hi: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = clamp(input[idx], params.lo, params.hi);
    }
}
`

// roundShader rounds every element half away from zero for non-negative
// pixel data.
const roundShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        result[idx] = floor(input[idx] + 0.5);
    }
}
`
